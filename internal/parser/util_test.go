package parser

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"$25.99", "25.99", false},
		{"$1,234,567.89", "1234567.89", false},
		{"0.00", "0.00", false},
		{" 25.99 ", "25.99", false},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.StringFixed(2) != tt.expected {
				t.Errorf("got %s, want %s", got.StringFixed(2), tt.expected)
			}
		})
	}
}

func TestContainsAny(t *testing.T) {
	tests := []struct {
		text     string
		needles  []string
		expected bool
	}{
		{"Welcome to TRUIST", []string{"Truist"}, true},
		{"Metro Bank", []string{"Truist", "metro"}, true},
		{"nothing", []string{"Truist"}, false},
		{"anything", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := containsAny(tt.text, tt.needles); got != tt.expected {
				t.Errorf("containsAny(%q): got %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}
