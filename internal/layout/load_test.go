package layout

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReadable(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected bool
	}{
		{
			name:     "statement text",
			pages:    []string{"Truist Bank\n\nYour account statement for the period ending 10/31\n\nChecking balance summary"},
			expected: true,
		},
		{
			name:     "too short",
			pages:    []string{"Bank statement"},
			expected: false,
		},
		{
			name:     "garbage glyphs",
			pages:    []string{strings.Repeat("ÃÂÄÅÆÇÈÉ", 20) + " bank"},
			expected: false,
		},
		{
			name:     "readable but unrelated",
			pages:    []string{strings.Repeat("lorem ipsum dolor sit amet ", 5)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsReadable(FromText(tt.pages))
			if got != tt.expected {
				t.Errorf("IsReadable: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTextQuality(t *testing.T) {
	assert.Equal(t, 0.0, textQuality(""))
	assert.Equal(t, 1.0, textQuality("10/03 SHOP 1,234.56"))
	assert.Less(t, textQuality("ÃÂÄÅ a"), 0.6)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.pdf"), DefaultParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pdf")
}

func TestLoadBytes_NotAPDF(t *testing.T) {
	_, err := LoadBytes([]byte("definitely not a pdf"), DefaultParams())
	require.Error(t, err)
}
