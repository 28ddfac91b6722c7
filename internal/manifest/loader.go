package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/loki/internal/builderr"
	"github.com/vk/loki/internal/ctxlog"
)

// File names recognised as a project manifest, in order of preference.
const (
	TOMLFile = "loki.toml"
	HCLFile  = "loki.hcl"
)

// FileNames lists the manifest names in order of preference.
var FileNames = []string{TOMLFile, HCLFile}

// Loader is the interface for a format-specific manifest reader.
type Loader interface {
	Load(ctx context.Context, path string) (*Project, error)
}

// LoaderFor picks the loader matching the manifest's file extension.
func LoaderFor(path string) (Loader, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return TOMLLoader{}, nil
	case ".hcl":
		return HCLLoader{}, nil
	default:
		return nil, parseError(path, fmt.Errorf("unsupported manifest format %q", filepath.Ext(path)))
	}
}

// Load reads the manifest at path with the loader its extension selects.
func Load(ctx context.Context, path string) (*Project, error) {
	loader, err := LoaderFor(path)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, path)
}

func parseError(path string, err error) error {
	return &builderr.Error{Kind: builderr.ErrManifestParse, Op: "parse manifest", Path: path, Err: err}
}

func finish(ctx context.Context, path string, p *Project) (*Project, error) {
	if err := p.Validate(); err != nil {
		return nil, parseError(path, err)
	}
	ctxlog.FromContext(ctx).Debug("Manifest loaded.",
		"path", path,
		"package", p.Package.Name,
		"optimization", p.Configuration.Optimization.String(),
	)
	return p, nil
}

// TOMLLoader reads loki.toml.
type TOMLLoader struct{}

type tomlRoot struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Configuration struct {
		Optimization any `toml:"optimization"`
	} `toml:"configuration"`
}

// Load implements Loader.
func (TOMLLoader) Load(ctx context.Context, path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, builderr.IO("read manifest", path, err)
	}

	var root tomlRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, parseError(path, err)
	}

	opt, err := ParseOptimization(root.Configuration.Optimization)
	if err != nil {
		return nil, parseError(path, fmt.Errorf("configuration.optimization: %w", err))
	}

	return finish(ctx, path, &Project{
		Package:       Package{Name: root.Package.Name},
		Configuration: Configuration{Optimization: opt},
	})
}

// HCLLoader reads loki.hcl.
type HCLLoader struct{}

type hclRoot struct {
	Package       *hclPackage       `hcl:"package,block"`
	Configuration *hclConfiguration `hcl:"configuration,block"`
	Remain        hcl.Body          `hcl:",remain"`
}

type hclPackage struct {
	Name string `hcl:"name"`
}

type hclConfiguration struct {
	Optimization cty.Value `hcl:"optimization,optional"`
}

// Load implements Loader.
func (HCLLoader) Load(ctx context.Context, path string) (*Project, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, builderr.IO("read manifest", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, parseError(path, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, parseError(path, diags)
	}
	if root.Package == nil {
		return nil, parseError(path, fmt.Errorf("missing package block"))
	}

	var opt Optimization
	if root.Configuration != nil {
		v, err := ctyToNative(root.Configuration.Optimization)
		if err != nil {
			return nil, parseError(path, fmt.Errorf("configuration.optimization: %w", err))
		}
		if opt, err = ParseOptimization(v); err != nil {
			return nil, parseError(path, fmt.Errorf("configuration.optimization: %w", err))
		}
	}

	return finish(ctx, path, &Project{
		Package:       Package{Name: root.Package.Name},
		Configuration: Configuration{Optimization: opt},
	})
}

// ctyToNative converts the optimization attribute into the string or integer
// form ParseOptimization understands. An absent attribute yields nil.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return nil, fmt.Errorf("optimization level %s is not an integer", bf.String())
		}
		i, _ := bf.Int64()
		return i, nil
	default:
		return nil, fmt.Errorf("expected a string or number, got %s", v.Type().FriendlyName())
	}
}
