package errors

import (
	"math"
	"testing"
)

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 3.5, false},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("node_size", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAttribute) {
				t.Errorf("ValidateNonNegative(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  float64
		wantErr bool
	}{
		{"ordered", 1, 20, false},
		{"equal", 5, 5, false},
		{"inverted", 6, 2, true},
		{"negative min", -1, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBounds("edge_width", tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBounds(%v, %v) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIndex(t *testing.T) {
	if err := ValidateIndex("seeds", 4, 5); err != nil {
		t.Errorf("ValidateIndex(4, 5) error = %v", err)
	}
	for _, i := range []int{-1, 5, 100} {
		err := ValidateIndex("seeds", i, 5)
		if !Is(err, ErrCodeInvalidIndex) {
			t.Errorf("ValidateIndex(%d, 5) = %v, want INVALID_INDEX", i, err)
		}
	}
}

func TestValidateLength(t *testing.T) {
	if err := ValidateLength("labels", 5, 5); err != nil {
		t.Errorf("ValidateLength(5, 5) error = %v", err)
	}
	if err := ValidateLength("labels", 4, 5); !Is(err, ErrCodeDimensionMismatch) {
		t.Errorf("ValidateLength(4, 5) = %v, want DIMENSION_MISMATCH", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "graph.json", false},
		{"valid nested", "data/karate.json", false},
		{"valid absolute", "/tmp/graph.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "../../../etc/passwd", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
