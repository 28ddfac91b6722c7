// Package cli is responsible for parsing command-line arguments and handling
// process-level concerns like exit codes. It turns argv into the one command
// the application should run.
package cli
