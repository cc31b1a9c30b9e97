package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want bool
	}{
		{"single char too short", "a", false},
		{"two chars", "ab", true},
		{"leading hyphen", "-ab", false},
		{"trailing hyphen", "ab-", false},
		{"uppercase", "AB", false},
		{"interior hyphens", "hello-world", true},
		{"digits", "post-42", true},
		{"empty", "", false},
		{"spaces", "a b", false},
		{"consecutive hyphens allowed", "a--b", true},
		{"128 chars", strings.Repeat("a", 128), true},
		{"129 chars", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSlug(tt.slug))
		})
	}
}
