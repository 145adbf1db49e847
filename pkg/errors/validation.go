package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxIDLength bounds class and relation identifiers.
const MaxIDLength = 256

// ValidateID checks that an identifier is usable as a stable class or
// relation key: non-empty, bounded and free of control characters.
func ValidateID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidDiagram, "%s id cannot be empty", kind)
	}
	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidDiagram, "%s id too long (max %d characters)", kind, MaxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDiagram, "%s id %q contains control characters", kind, id)
		}
	}
	return nil
}

// ValidateDimensions checks a canvas size supplied by a caller. Zero means
// "use the default" and is accepted; negative, NaN and infinite values are not.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidDimensions, "canvas dimensions must be finite, got %vx%v", width, height)
		}
		if v < 0 {
			return New(ErrCodeInvalidDimensions, "canvas dimensions must not be negative, got %vx%v", width, height)
		}
	}
	return nil
}

// ValidateOutputPath rejects obviously unusable output paths.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains a null byte")
	}
	return nil
}
