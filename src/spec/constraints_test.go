package spec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dgerrors "datagen/src/errors"
)

func TestDefaultConstraintsAreValid(t *testing.T) {
	c := DefaultConstraints()
	require.NoError(t, c.Update(nil))
	require.Equal(t, time.DateOnly, c.DateFormat)
	require.Equal(t, time.DateTime, c.TimestampFormat)
}

func TestUpdateOverrides(t *testing.T) {
	c := DefaultConstraints()
	err := c.Update(map[string]string{
		"VARCHAR_MIN":       "2",
		"VARCHAR_MAX":       "4",
		"DECIMAL_PRECISION": "8",
		"days_ago":          "30",
		"DATE_FORMAT":       "2006/01/02",
	})
	require.NoError(t, err)
	require.Equal(t, 2, c.VarcharMin)
	require.Equal(t, 4, c.VarcharMax)
	require.Equal(t, 8, c.DecimalPrecision)
	require.Equal(t, 30, c.DaysAgo)
	require.Equal(t, "2006/01/02", c.DateFormat)
}

func TestUpdateCrossFieldValidation(t *testing.T) {
	// Precision must stay strictly above scale.
	c := DefaultConstraints()
	err := c.Update(map[string]string{"DECIMAL_PRECISION": "2"})
	require.Error(t, err)
	require.True(t, dgerrors.ErrConstraintViolation.Equal(err))
	require.ErrorContains(t, err, "DECIMAL_PRECISION")

	c = DefaultConstraints()
	err = c.Update(map[string]string{"DECIMAL_PRECISION": "4", "DECIMAL_SCALE": "4"})
	require.Error(t, err)

	// Max checked against the overridden min, not the default.
	c = DefaultConstraints()
	err = c.Update(map[string]string{"VARCHAR_MIN": "10", "VARCHAR_MAX": "12"})
	require.NoError(t, err)

	c = DefaultConstraints()
	err = c.Update(map[string]string{"VARCHAR_MAX": "5"})
	require.Error(t, err)
	require.ErrorContains(t, err, "VARCHAR_MAX")

	c = DefaultConstraints()
	err = c.Update(map[string]string{"TEXT_MAX": "20"})
	require.Error(t, err)
	require.ErrorContains(t, err, "TEXT_MAX")
}

func TestUpdateRejectsBadValues(t *testing.T) {
	c := DefaultConstraints()
	err := c.Update(map[string]string{"VARCHAR_MIN": "abc"})
	require.Error(t, err)
	require.True(t, dgerrors.ErrConstraintNotInteger.Equal(err))

	c = DefaultConstraints()
	err = c.Update(map[string]string{"NO_SUCH_KNOB": "1"})
	require.Error(t, err)
	require.True(t, dgerrors.ErrUnknownConstraint.Equal(err))
}
