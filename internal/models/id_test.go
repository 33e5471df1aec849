package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid lowercase hex", "64f1b2c3d4e5f6a7b8c9d0e1", true},
		{"valid uppercase hex", "64F1B2C3D4E5F6A7B8C9D0E1", true},
		{"empty", "", false},
		{"too short", "64f1b2c3d4e5f6a7b8c9d0", false},
		{"too long", "64f1b2c3d4e5f6a7b8c9d0e1ff", false},
		{"non-hex alphabet", "zzf1b2c3d4e5f6a7b8c9d0e1", false},
		{"injection shaped", "'; drop collection; --", false},
		{"whitespace", "64f1b2c3d4e5f6a7b8c9d0e ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidID(tt.value))
		})
	}
}
