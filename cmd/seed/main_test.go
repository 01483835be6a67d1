package main

import "testing"

func TestNeedsDatabase(t *testing.T) {
	tests := []struct {
		name                     string
		reset, defaults, indexes bool
		want                     bool
	}{
		{"token only", false, false, false, false},
		{"reset", true, false, false, true},
		{"defaults", false, true, false, true},
		{"indexes", false, false, true, true},
	}
	for _, tt := range tests {
		if got := needsDatabase(tt.reset, tt.defaults, tt.indexes); got != tt.want {
			t.Errorf("%s: needsDatabase = %v, want %v", tt.name, got, tt.want)
		}
	}
}
