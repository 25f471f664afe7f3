package config

import (
	"strconv"
	"strings"

	"github.com/docker/go-units"

	dgerrors "datagen/src/errors"
)

const (
	// sizePerFile is the auto file-count ceiling in size mode: targets at or
	// below it produce one file, larger targets one file per full ceiling.
	sizePerFile = 10 * units.MiB
	// recordsPerFile is the equivalent ceiling in record-count mode. The two
	// ceilings are independent constants, not two views of one value.
	recordsPerFile = 100000
)

// Plan is the resolved work layout for one run: the total volume in the
// active unit (bytes or records), the number of output files, and the
// per-file quota.
type Plan struct {
	BySize   bool
	Total    int64
	NumFiles int
	PerFile  int64
}

// ParseSize resolves a size string to bytes, rounded to the nearest multiple
// of 10. Bare digits are bytes; a trailing K, M, G or T (case-insensitive)
// multiplies by the matching power of 1024.
func ParseSize(s string) (int64, error) {
	if n, err := strconv.ParseUint(s, 10, 63); err == nil {
		return roundToTen(int64(n)), nil
	}

	if len(s) < 2 {
		return 0, dgerrors.ErrInvalidSizeFormat.GenWithStackByArgs(s)
	}
	n, err := strconv.ParseUint(s[:len(s)-1], 10, 63)
	if err != nil {
		return 0, dgerrors.ErrInvalidSizeFormat.GenWithStackByArgs(s)
	}

	var multiplier int64
	switch strings.ToUpper(s[len(s)-1:]) {
	case "K":
		multiplier = units.KiB
	case "M":
		multiplier = units.MiB
	case "G":
		multiplier = units.GiB
	case "T":
		multiplier = units.TiB
	default:
		return 0, dgerrors.ErrInvalidSizeFormat.GenWithStackByArgs(s)
	}

	return roundToTen(int64(n) * multiplier), nil
}

func roundToTen(n int64) int64 {
	return (n + 5) / 10 * 10
}

// BuildPlan converts the configured target volume into a file layout. When
// the file count is not requested explicitly it is derived from the per-file
// ceiling for the active mode, and always clamped to at least one file.
func BuildPlan(cfg *Config) (*Plan, error) {
	if cfg.Common.Size != "" {
		total, err := ParseSize(cfg.Common.Size)
		if err != nil {
			return nil, err
		}
		numFiles := resolveNumFiles(cfg.Common.Files, total, sizePerFile)
		return &Plan{
			BySize:   true,
			Total:    total,
			NumFiles: numFiles,
			PerFile:  total / int64(numFiles),
		}, nil
	}

	total := cfg.Common.Records
	numFiles := resolveNumFiles(cfg.Common.Files, total, recordsPerFile)
	return &Plan{
		Total:    total,
		NumFiles: numFiles,
		PerFile:  total / int64(numFiles),
	}, nil
}

func resolveNumFiles(requested int, total, ceiling int64) int {
	numFiles := requested
	if numFiles <= 0 {
		if total <= ceiling {
			numFiles = 1
		} else {
			numFiles = int(total / ceiling)
		}
	}
	return max(numFiles, 1)
}

// FileQuota returns the quota for the 1-based file index. The last file
// absorbs the division remainder so the quotas sum to the full target.
func (p *Plan) FileQuota(index int) int64 {
	if index == p.NumFiles {
		return p.Total - p.PerFile*int64(p.NumFiles-1)
	}
	return p.PerFile
}
