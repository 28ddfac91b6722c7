// Package manifest reads the project manifest: the package name that becomes
// the output binary and the optimization level forwarded to the compiler.
//
// Two formats are understood. loki.toml is the primary one; loki.hcl carries
// the same two blocks for projects that prefer HCL:
//
//	[package]
//	name = "hello"
//
//	[configuration]
//	optimization = "none"
package manifest

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Project is the parsed manifest. It is read-only once loaded and shared by
// reference into every action that needs it.
type Project struct {
	Package       Package
	Configuration Configuration
}

// Package holds the [package] table.
type Package struct {
	Name string
}

// Configuration holds the [configuration] table.
type Configuration struct {
	Optimization Optimization
}

// Optimization is a compiler optimization level.
type Optimization int

const (
	OptimizeDefault Optimization = iota
	OptimizeNone
	OptimizeLess
	OptimizeAggressive
	OptimizeSize
	OptimizeMinSize
	OptimizeDebug
)

var optimizationNames = map[Optimization]string{
	OptimizeDefault:    "default",
	OptimizeNone:       "none",
	OptimizeLess:       "less",
	OptimizeAggressive: "aggressive",
	OptimizeSize:       "size",
	OptimizeMinSize:    "min-size",
	OptimizeDebug:      "debug",
}

var optimizationFlags = map[Optimization]string{
	OptimizeDefault:    "-O2",
	OptimizeNone:       "-O0",
	OptimizeLess:       "-O1",
	OptimizeAggressive: "-O3",
	OptimizeSize:       "-Os",
	OptimizeMinSize:    "-Oz",
	OptimizeDebug:      "-Og",
}

var optimizationAliases = map[string]Optimization{
	"0": OptimizeNone,
	"1": OptimizeLess,
	"2": OptimizeDefault,
	"3": OptimizeAggressive,
	"s": OptimizeSize,
	"z": OptimizeMinSize,
	"g": OptimizeDebug,
}

// String returns the manifest spelling of the level.
func (o Optimization) String() string {
	if name, ok := optimizationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Optimization(%d)", int(o))
}

// Flag returns the compiler driver flag for the level.
func (o Optimization) Flag() string {
	if flag, ok := optimizationFlags[o]; ok {
		return flag
	}
	return optimizationFlags[OptimizeDefault]
}

// ParseOptimization accepts a level name ("none", "size", ...), a short alias
// ("0".."3", "s", "z", "g") or an integer 0..3. A nil value means the default.
func ParseOptimization(v any) (Optimization, error) {
	switch val := v.(type) {
	case nil:
		return OptimizeDefault, nil
	case Optimization:
		return val, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		for level, name := range optimizationNames {
			if name == s {
				return level, nil
			}
		}
		if level, ok := optimizationAliases[s]; ok {
			return level, nil
		}
		return 0, fmt.Errorf("unknown optimization level %q", val)
	case int:
		return ParseOptimization(int64(val))
	case int64:
		if val < 0 || val > 3 {
			return 0, fmt.Errorf("optimization level %d out of range 0..3", val)
		}
		return optimizationAliases[fmt.Sprint(val)], nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("optimization level %v is not an integer", val)
		}
		return ParseOptimization(int64(val))
	default:
		return 0, fmt.Errorf("unsupported optimization value of type %T", v)
	}
}

// Validate checks the fields a build cannot run without.
func (p *Project) Validate() error {
	name := p.Package.Name
	switch {
	case name == "":
		return errors.New("package.name is required")
	case name == "." || name == "..":
		return fmt.Errorf("package.name %q is not a valid file name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("package.name %q must not contain path separators", name)
	}
	return nil
}
