package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateNonNegative rejects negative or non-finite display parameters such
// as sizes, widths, margins and font sizes.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidAttribute, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidAttribute, "%s must be non-negative, got %g", name, v)
	}
	return nil
}

// ValidateBounds checks a [lo, hi] range used for linear scaling.
// Both ends must be non-negative and lo must not exceed hi.
func ValidateBounds(name string, lo, hi float64) error {
	if err := ValidateNonNegative(name+" min", lo); err != nil {
		return err
	}
	if err := ValidateNonNegative(name+" max", hi); err != nil {
		return err
	}
	if lo > hi {
		return New(ErrCodeInvalidAttribute, "%s: min %g exceeds max %g", name, lo, hi)
	}
	return nil
}

// ValidateIndex checks that i addresses one of n nodes.
func ValidateIndex(name string, i, n int) error {
	if i < 0 || i >= n {
		return New(ErrCodeInvalidIndex, "%s: index %d out of range [0, %d)", name, i, n)
	}
	return nil
}

// ValidateLength checks that a dense array has one entry per node.
func ValidateLength(name string, got, n int) error {
	if got != n {
		return New(ErrCodeDimensionMismatch, "%s: got %d values for %d nodes", name, got, n)
	}
	return nil
}

// ValidatePath validates a file path passed to the server or CLI.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
