package errors

import (
	"github.com/pingcap/errors"
)

// errors
var (
	// validation errors, raised before any generation starts
	ErrInvalidSizeFormat = errors.Normalize(
		"invalid size %q, expected digits with an optional K/M/G/T unit",
		errors.RFCCodeText("DG:ErrInvalidSizeFormat"),
	)
	ErrConstraintNotInteger = errors.Normalize(
		"constraint %s must be an integer",
		errors.RFCCodeText("DG:ErrConstraintNotInteger"),
	)
	ErrConstraintViolation = errors.Normalize(
		"constraint %s cannot be less than %s",
		errors.RFCCodeText("DG:ErrConstraintViolation"),
	)
	ErrUnknownConstraint = errors.Normalize(
		"unknown constraint %s",
		errors.RFCCodeText("DG:ErrUnknownConstraint"),
	)
	ErrInvalidConfig = errors.Normalize(
		"invalid config: %s",
		errors.RFCCodeText("DG:ErrInvalidConfig"),
	)

	// pre-flight errors
	ErrTargetNotWritable = errors.Normalize(
		"target directory %s is not writable",
		errors.RFCCodeText("DG:ErrTargetNotWritable"),
	)
	ErrInsufficientSpace = errors.Normalize(
		"insufficient space on %s, required %d bytes, available %d bytes",
		errors.RFCCodeText("DG:ErrInsufficientSpace"),
	)
	ErrGetAvailableSpace = errors.Normalize(
		"get available space of %s",
		errors.RFCCodeText("DG:ErrGetAvailableSpace"),
	)

	// generation errors
	ErrWriteDataFile = errors.Normalize(
		"write data file %s",
		errors.RFCCodeText("DG:ErrWriteDataFile"),
	)
)

// WrapError wraps an rfc error with the cause. It returns nil if the cause
// is nil so callers can wrap unconditionally.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByArgs(args...)
}
