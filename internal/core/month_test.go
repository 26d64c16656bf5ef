package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Month
		wantErr bool
	}{
		{name: "valid", input: "2024-05", want: "2024-05"},
		{name: "trimmed", input: " 2024-05 ", want: "2024-05"},
		{name: "empty", input: "", wantErr: true},
		{name: "full date", input: "2024-05-01", wantErr: true},
		{name: "month out of range", input: "2024-13", wantErr: true},
		{name: "garbage", input: "May 2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseMonth(%q) error = %v, want ErrInvalidArgument", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMonth(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMonth(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMonth_Contains(t *testing.T) {
	m := Month("2024-05")

	inside := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	if !m.Contains(inside) {
		t.Errorf("Contains(%v) = false, want true", inside)
	}

	firstOfNext := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if m.Contains(firstOfNext) {
		t.Errorf("Contains(%v) = true, want false", firstOfNext)
	}

	sameMonthOtherYear := time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC)
	if m.Contains(sameMonthOtherYear) {
		t.Errorf("Contains(%v) = true, want false", sameMonthOtherYear)
	}
}

func TestMonthOf(t *testing.T) {
	d := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	if got := MonthOf(d); got != "2024-12" {
		t.Errorf("MonthOf() = %q, want 2024-12", got)
	}
}
