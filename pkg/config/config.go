// Package config loads the CLI's layered configuration: built-in
// defaults, then an optional TOML file, then STATTAB_ environment
// variables. The library itself takes a plain stattab.Config; this
// package only serves embedding programs.
package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stattab/pkg/errors"
	"github.com/arthur-debert/stattab/pkg/stattab"
	"github.com/arthur-debert/stattab/pkg/ui"
)

// Column defines one table column in the config file
type Column struct {
	Key  string `koanf:"key" toml:"key"`
	Name string `koanf:"name" toml:"name"`
}

// Table holds the display options
type Table struct {
	PrintTitle bool   `koanf:"print_title" toml:"print_title"`
	Format     string `koanf:"format" toml:"format"`
	PrintStats bool   `koanf:"print_stats" toml:"print_stats"`
	ResetMode  string `koanf:"reset_mode" toml:"reset_mode"`
}

// File holds the export file options
type File struct {
	Write bool   `koanf:"write" toml:"write"`
	Mode  string `koanf:"mode" toml:"mode"`
	Path  string `koanf:"path" toml:"path"`
}

// Config is the full CLI configuration
type Config struct {
	Title   string   `koanf:"title" toml:"title"`
	Columns []Column `koanf:"columns" toml:"columns,omitempty"`
	Table   Table    `koanf:"table" toml:"table"`
	File    File     `koanf:"file" toml:"file"`
}

// Defaults mirrors the library defaults
func Defaults() Config {
	return Config{
		Title: "STATISTICS",
		Table: Table{
			PrintTitle: true,
			Format:     "auto",
			PrintStats: true,
			ResetMode:  string(stattab.OnTableShrink),
		},
		File: File{
			Write: false,
			Mode:  string(stattab.FileOverwrite),
			Path:  stattab.DefaultFilePath,
		},
	}
}

func defaultsMap() map[string]interface{} {
	d := Defaults()
	return map[string]interface{}{
		"title":             d.Title,
		"table.print_title": d.Table.PrintTitle,
		"table.format":      d.Table.Format,
		"table.print_stats": d.Table.PrintStats,
		"table.reset_mode":  d.Table.ResetMode,
		"file.write":        d.File.Write,
		"file.mode":         d.File.Mode,
		"file.path":         d.File.Path,
	}
}

// Load builds the configuration. An empty path skips the file layer; a
// named file must exist and parse.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "loading config file %s", path)
		}
	}

	err := k.Load(env.Provider("STATTAB_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "STATTAB_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "decoding configuration")
	}
	return &cfg, nil
}

// Headers converts the configured columns to stattab headers
func (c *Config) Headers() []stattab.Header {
	headers := make([]stattab.Header, len(c.Columns))
	for i, col := range c.Columns {
		headers[i] = stattab.Header{Key: col.Key, Name: col.Name}
	}
	return headers
}

// CollectorConfig resolves the file configuration into collector
// options for the given output stream. The auto format picks short or
// append from the stream's terminal capabilities.
func (c *Config) CollectorConfig(out *os.File) (stattab.Config, error) {
	cfg := stattab.DefaultConfig()
	cfg.PrintTitle = c.Table.PrintTitle
	cfg.PrintStats = c.Table.PrintStats
	cfg.WriteFile = c.File.Write
	cfg.FilePath = c.File.Path
	cfg.Out = out

	mode, err := ui.ParseMode(c.Table.Format)
	if err != nil {
		return cfg, errors.Wrap(err, errors.ErrConfigValid, "table.format")
	}
	cfg.ShortFormat = mode.Resolve(out) == ui.ModeShort

	if cfg.ResetMode, err = stattab.ParseResetMode(c.Table.ResetMode); err != nil {
		return cfg, err
	}
	if cfg.FileMode, err = stattab.ParseFileMode(c.File.Mode); err != nil {
		return cfg, err
	}
	return cfg, nil
}
