package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"datagen/src/config"
	dgerrors "datagen/src/errors"
)

var (
	cfgPath     = ""
	delimiter   = ","
	size        = ""
	records     = int64(1000)
	columns     = 10
	files       = 0
	targetDir   = ""
	prefix      = "datagen_file_"
	suffix      = ""
	compress    = false
	threads     = 0
	constraints = ""
	showSchema  = false
)

func registerFlags() {
	flag.StringVar(&cfgPath, "cfg", cfgPath, "optional TOML config file, explicit flags take precedence")
	flag.StringVar(&delimiter, "d", delimiter, "delimiter to separate the columns, literal t maps to a tab")
	flag.StringVar(&delimiter, "delimiter", delimiter, "alias of -d")
	flag.StringVar(&size, "s", size, "total size of data to generate, digits with an optional K/M/G/T unit")
	flag.StringVar(&size, "size", size, "alias of -s")
	flag.Int64Var(&records, "r", records, "total number of records to generate, mutually exclusive with -s")
	flag.Int64Var(&records, "records", records, "alias of -r")
	flag.IntVar(&columns, "c", columns, "number of required columns")
	flag.IntVar(&columns, "columns", columns, "alias of -c")
	flag.IntVar(&files, "f", files, "number of files to generate, computed when omitted")
	flag.IntVar(&files, "files", files, "alias of -f")
	flag.StringVar(&targetDir, "o", targetDir, "path to store the generated files, defaults to the binary's directory")
	flag.StringVar(&targetDir, "target-dir", targetDir, "alias of -o")
	flag.StringVar(&prefix, "prefix", prefix, "filenames should start with")
	flag.StringVar(&suffix, "suffix", suffix, "filenames should end with")
	flag.BoolVar(&compress, "compress", compress, "gzip compress the generated files")
	flag.IntVar(&threads, "t", threads, "number of concurrent workers per wave")
	flag.IntVar(&threads, "threads", threads, "alias of -t")
	flag.StringVar(&constraints, "constraints", constraints,
		"comma separated KEY=VALUE constraint overrides, e.g. VARCHAR_MIN=3,VARCHAR_MAX=8")
	flag.BoolVar(&showSchema, "show-schema", showSchema, "print the resolved column schema and exit")
}

func parseConstraintOverrides(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, dgerrors.ErrInvalidConfig.GenWithStackByArgs(
				fmt.Sprintf("constraint override %q must be KEY=VALUE", pair))
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

// applyFlags copies every flag the user actually set onto the config,
// overriding values loaded from the config file.
func applyFlags(cfg *config.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d", "delimiter":
			cfg.Common.Delimiter = delimiter
		case "s", "size":
			cfg.Common.Size = size
		case "r", "records":
			cfg.Common.Records = records
			cfg.RecordsExplicit = true
		case "c", "columns":
			cfg.Common.Columns = columns
		case "f", "files":
			cfg.Common.Files = files
		case "o", "target-dir":
			cfg.Common.TargetDir = targetDir
		case "prefix":
			cfg.Common.Prefix = prefix
		case "suffix":
			cfg.Common.Suffix = suffix
		case "compress":
			cfg.Common.Compress = compress
		case "t", "threads":
			cfg.Common.Threads = threads
		case "constraints":
			overrides, perr := parseConstraintOverrides(constraints)
			if perr != nil {
				err = perr
				return
			}
			if cfg.Constraints == nil {
				cfg.Constraints = make(map[string]string)
			}
			for k, v := range overrides {
				cfg.Constraints[k] = v
			}
		}
	})
	return err
}

func main() {
	registerFlags()
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		md, err := toml.DecodeFile(cfgPath, cfg)
		if err != nil {
			log.Fatal("load config file", zap.String("path", cfgPath), zap.Error(err))
		}
		if md.IsDefined("common", "records") {
			cfg.RecordsExplicit = true
		}
	}
	if err := applyFlags(cfg); err != nil {
		log.Fatal("invalid arguments", zap.Error(err))
	}
	if err := config.Normalize(cfg); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	if showSchema {
		if err := ShowSchema(cfg); err != nil {
			log.Fatal("failed to resolve schema", zap.Error(err))
		}
		return
	}

	if err := GenerateFiles(cfg); err != nil {
		log.Fatal("failed to generate files", zap.Error(err))
	}
}
