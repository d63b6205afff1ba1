package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
)

func TestValidateTitle(t *testing.T) {
	if _, err := validateTitle("   "); err == nil {
		t.Error("expected error for blank title")
	}
	got, err := validateTitle("  Buy milk ")
	if err != nil || got != "Buy milk" {
		t.Errorf("validateTitle = %q, %v", got, err)
	}
}

func TestValidateCategoryName(t *testing.T) {
	existing := []types.Category{{ID: "1", Name: "Work"}}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "Home", want: "Home"},
		{in: "  Garden  ", want: "Garden"},
		{in: "work", wantErr: true},
		{in: "WORK", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := validateCategoryName(existing, tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateDueDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "2024-05-01", want: "2024-05-01"},
		{in: " 2024-05-01 ", want: "2024-05-01"},
		{in: "2024-13-01", wantErr: true},
		{in: "05/01/2024", wantErr: true},
		{in: "tomorrow", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := validateDueDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidatePriorityFilter(t *testing.T) {
	for in, want := range map[string]types.Priority{"": "", "all": "", "HIGH": types.PriorityHigh, "low": types.PriorityLow} {
		got, err := validatePriorityFilter(in)
		if err != nil || got != want {
			t.Errorf("validatePriorityFilter(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := validatePriorityFilter("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestCleanTags(t *testing.T) {
	got := cleanTags([]string{" work ", "", "home", "work", "  "})
	if diff := cmp.Diff([]string{"work", "home", "work"}, got); diff != "" {
		t.Errorf("unexpected tags (-want +got):\n%s", diff)
	}
	if got := cleanTags(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tc := range tests {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			var out bytes.Buffer
			if got := confirm(strings.NewReader(tc.input), &out, "Delete?"); got != tc.want {
				t.Errorf("confirm(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if !strings.HasPrefix(out.String(), "Delete? [y/N] ") {
				t.Errorf("unexpected prompt %q", out.String())
			}
		})
	}
}
