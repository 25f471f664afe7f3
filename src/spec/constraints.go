package spec

import (
	"sort"
	"strconv"
	"strings"
	"time"

	dgerrors "datagen/src/errors"
)

// Constraint names accepted by ConstraintSet.Update.
const (
	DecimalPrecision = "DECIMAL_PRECISION"
	DecimalScale     = "DECIMAL_SCALE"
	VarcharMin       = "VARCHAR_MIN"
	VarcharMax       = "VARCHAR_MAX"
	TextMin          = "TEXT_MIN"
	TextMax          = "TEXT_MAX"
	DaysAgo          = "DAYS_AGO"
	DateFormat       = "DATE_FORMAT"
	TimestampFormat  = "TIMESTAMP_FORMAT"
)

// ConstraintSet holds the tunable generation parameters. It is built from
// defaults, optionally overridden once before generation begins, and
// read-only afterwards, so workers share it without locking.
type ConstraintSet struct {
	DecimalPrecision int
	DecimalScale     int
	VarcharMin       int
	VarcharMax       int
	TextMin          int
	TextMax          int
	DaysAgo          int
	DateFormat       string
	TimestampFormat  string
}

// DefaultConstraints returns the documented defaults. Date and timestamp
// formats are Go reference layouts.
func DefaultConstraints() *ConstraintSet {
	return &ConstraintSet{
		DecimalPrecision: 5,
		DecimalScale:     2,
		VarcharMin:       6,
		VarcharMax:       20,
		TextMin:          21,
		TextMax:          99,
		DaysAgo:          1095,
		DateFormat:       time.DateOnly,
		TimestampFormat:  time.DateTime,
	}
}

// Update applies user overrides and re-validates the cross-field invariants
// against the fully resolved set. Keys are applied in descending order so
// errors are reported deterministically regardless of map iteration.
func (c *ConstraintSet) Update(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	for _, k := range keys {
		if err := c.set(strings.ToUpper(k), overrides[k]); err != nil {
			return err
		}
	}
	return c.validate()
}

func (c *ConstraintSet) set(name, value string) error {
	if name == DateFormat {
		c.DateFormat = value
		return nil
	}
	if name == TimestampFormat {
		c.TimestampFormat = value
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return dgerrors.ErrConstraintNotInteger.GenWithStackByArgs(name)
	}

	switch name {
	case DecimalPrecision:
		c.DecimalPrecision = n
	case DecimalScale:
		c.DecimalScale = n
	case VarcharMin:
		c.VarcharMin = n
	case VarcharMax:
		c.VarcharMax = n
	case TextMin:
		c.TextMin = n
	case TextMax:
		c.TextMax = n
	case DaysAgo:
		c.DaysAgo = n
	default:
		return dgerrors.ErrUnknownConstraint.GenWithStackByArgs(name)
	}
	return nil
}

func (c *ConstraintSet) validate() error {
	if c.DecimalPrecision <= c.DecimalScale {
		return dgerrors.ErrConstraintViolation.GenWithStackByArgs(DecimalPrecision, DecimalScale)
	}
	if c.VarcharMax < c.VarcharMin {
		return dgerrors.ErrConstraintViolation.GenWithStackByArgs(VarcharMax, VarcharMin)
	}
	if c.TextMax < c.TextMin {
		return dgerrors.ErrConstraintViolation.GenWithStackByArgs(TextMax, TextMin)
	}
	return nil
}
