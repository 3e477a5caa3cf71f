package model

import "testing"

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"smart", FilterSmart, false},
		{"w", FilterWitzig, false},
		{"n", FilterNWitzig, false},
		{"rated", FilterRated, false},
		{"unrated", FilterUnrated, false},
		{"all", FilterAll, false},
		{"", DefaultFilter, false},
		{"witzig", "", true},
		{"SMART", "", true},
		{"x", "", true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFilter(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilter(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
