package apperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Database", CategoryDatabase, true},
		{"DATABASE", CategoryDatabase, true},
		{"KEY_GENERATION", CategoryKeyGeneration, true},
		{"keygeneration", CategoryKeyGeneration, true},
		{"ICON_GENERATION", CategoryIconGeneration, true},
		{"io", CategoryIO, true},
		{" Auth ", CategoryAuth, true},
		{"KeyManagement", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCategory_ValidOnlyForCanonicalSpelling(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("DATABASE").Valid())
	assert.False(t, Category("").Valid())
	assert.Len(t, Categories, 16)
}

func TestParseSeverity(t *testing.T) {
	got, ok := ParseSeverity("critical")
	assert.True(t, ok)
	assert.Equal(t, SeverityCritical, got)

	_, ok = ParseSeverity("fatal")
	assert.False(t, ok)
}
