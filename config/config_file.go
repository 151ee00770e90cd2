package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the project-local config file picked up from the working directory.
const FileName = "framestack.toml"

// FileConfig holds defaults for command flags. Keys mirror the flag names with
// underscores instead of dashes; flags given on the command line always win.
type FileConfig struct {
	Size         *int      `toml:"size"`
	Suffix       *string   `toml:"suffix"`
	Mean         []float64 `toml:"mean"`
	Std          []float64 `toml:"std"`
	ChannelOrder string    `toml:"channel_order"`
	Format       string    `toml:"format"`
	Threshold    *int      `toml:"threshold"`
	LogLevel     string    `toml:"log_level"`
}

// ParseFileConfig decodes a TOML config. Unknown keys are rejected so typos surface.
func ParseFileConfig(r io.Reader) (FileConfig, error) {
	var fc FileConfig
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, err
	}
	defer func() { _ = f.Close() }()
	return ParseFileConfig(f)
}

// DefaultConfigPath returns ~/.framestack/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".framestack", "config.toml")
	}
	return ""
}

// SearchPaths lists the config files kong should try, lowest priority first.
func SearchPaths() []string {
	var paths []string
	if p := DefaultConfigPath(); p != "" {
		paths = append(paths, p)
	}
	return append(paths, FileName)
}

// Values maps flag names to the string form kong parses for them.
func (fc FileConfig) Values() map[string]string {
	values := make(map[string]string)

	if fc.Size != nil {
		values["size"] = strconv.Itoa(*fc.Size)
	}
	if fc.Suffix != nil {
		values["suffix"] = *fc.Suffix
	}
	if len(fc.Mean) > 0 {
		values["mean"] = joinFloats(fc.Mean)
	}
	if len(fc.Std) > 0 {
		values["std"] = joinFloats(fc.Std)
	}
	if fc.ChannelOrder != "" {
		values["channel-order"] = strings.ToLower(fc.ChannelOrder)
	}
	if fc.Format != "" {
		values["format"] = strings.ToLower(fc.Format)
	}
	if fc.Threshold != nil {
		values["threshold"] = strconv.Itoa(*fc.Threshold)
	}
	if fc.LogLevel != "" {
		values["log-level"] = strings.ToLower(fc.LogLevel)
	}

	return values
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Loader is a kong.ConfigurationLoader for TOML files.
func Loader(r io.Reader) (kong.Resolver, error) {
	fc, err := ParseFileConfig(r)
	if err != nil {
		return nil, err
	}
	return Resolver(fc), nil
}

// Resolver exposes fc to kong as flag defaults.
func Resolver(fc FileConfig) kong.Resolver {
	values := fc.Values()
	return kong.ResolverFunc(func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		return nil, nil
	})
}
