package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dgerrors "datagen/src/errors"
)

const (
	defaultDelimiter = ","
	defaultRecords   = 1000
	defaultColumns   = 10
	defaultPrefix    = "datagen_file_"
)

// CommonConfig carries the user-facing generation options. Fields map 1:1
// onto the CLI flags and the [common] table of a config file.
type CommonConfig struct {
	Delimiter string `toml:"delimiter"`
	Records   int64  `toml:"records"`
	Size      string `toml:"size"`
	Columns   int    `toml:"columns"`
	Files     int    `toml:"files"`
	TargetDir string `toml:"target_dir"`
	Prefix    string `toml:"prefix"`
	Suffix    string `toml:"suffix"`
	Compress  bool   `toml:"compress"`
	Threads   int    `toml:"threads"`
}

type Config struct {
	Common      CommonConfig      `toml:"common"`
	Constraints map[string]string `toml:"constraints"`

	// RecordsExplicit records whether the user supplied the record count
	// themselves, as opposed to inheriting the default. Needed to enforce
	// the records-xor-size rule.
	RecordsExplicit bool `toml:"-"`

	// Derived at runtime and not read from config.
	ResolvedDelimiter string `toml:"-"`
	ResolvedSuffix    string `toml:"-"`
}

// Default returns a config populated with the documented flag defaults.
func Default() *Config {
	return &Config{
		Common: CommonConfig{
			Delimiter: defaultDelimiter,
			Records:   defaultRecords,
			Columns:   defaultColumns,
			Prefix:    defaultPrefix,
		},
	}
}

// Normalize resolves derived config values after loading. The literal
// delimiter "t" maps to a tab character, compression appends ".gz" to the
// file suffix, and an empty target dir falls back to the directory holding
// the binary.
func Normalize(cfg *Config) error {
	cfg.ResolvedDelimiter = cfg.Common.Delimiter
	if cfg.Common.Delimiter == "t" {
		cfg.ResolvedDelimiter = "\t"
	}

	cfg.ResolvedSuffix = cfg.Common.Suffix
	if cfg.Common.Compress {
		cfg.ResolvedSuffix += ".gz"
	}

	if cfg.Common.TargetDir == "" {
		exe, err := os.Executable()
		if err != nil {
			cfg.Common.TargetDir = "."
		} else {
			cfg.Common.TargetDir = filepath.Dir(exe)
		}
	}
	abs, err := filepath.Abs(cfg.Common.TargetDir)
	if err != nil {
		return dgerrors.ErrInvalidConfig.GenWithStackByArgs(err.Error())
	}
	cfg.Common.TargetDir = abs
	return nil
}

// Validate returns a user-friendly error if the configuration is invalid.
// It must run after Normalize.
func Validate(cfg *Config) error {
	var errs []string

	if len(cfg.ResolvedDelimiter) != 1 {
		errs = append(errs, fmt.Sprintf("delimiter must be a single character, got %q", cfg.Common.Delimiter))
	}
	if cfg.Common.Columns < 1 {
		errs = append(errs, "columns must be greater than 0")
	}
	if cfg.Common.Files < 0 {
		errs = append(errs, "files must be >= 0")
	}
	if cfg.Common.Threads < 0 {
		errs = append(errs, "threads must be >= 0")
	}
	if cfg.Common.Size != "" && cfg.RecordsExplicit {
		errs = append(errs, "records and size are mutually exclusive, supply only one")
	}
	if cfg.Common.Size == "" && cfg.Common.Records <= 0 {
		errs = append(errs, "records must be greater than 0")
	}

	if len(errs) == 0 {
		return nil
	}

	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e)
	}
	return dgerrors.ErrInvalidConfig.GenWithStackByArgs(sb.String())
}
