package domain

import (
	"testing"
	"time"
)

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{"2024-01-01", "Mon Jan 01 2024"},
		{"2020-12-25", "Fri Dec 25 2020"},
		{"2021-01-02", "Sat Jan 02 2021"},
		// нераспознанная строка возвращается как есть
		{"not-a-date", "not-a-date"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			if got := DisplayDate(tt.stored); got != tt.want {
				t.Errorf("DisplayDate(%q) = %q, want %q", tt.stored, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2024-01-05", want: "2024-01-05"},
		{input: "2024-1-5", want: "2024-01-05"},
		{input: "Jan 05 2024", want: "2024-01-05"},
		{input: "Jan 5 2024", want: "2024-01-05"},
		{input: "January 5 2024", want: "2024-01-05"},
		{input: "Fri Jan 05 2024", want: "2024-01-05"},
		{input: "01/05/2024", want: "2024-01-05"},
		{input: "  2024-01-05  ", want: "2024-01-05"},
		{input: "not-a-date", wantErr: true},
		{input: "2024-13-40", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeDate(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	got := Today()
	parsed, err := time.Parse(DateLayout, got)
	if err != nil {
		t.Fatalf("Today() = %q, not in layout %q: %v", got, DateLayout, err)
	}
	now := time.Now().UTC()
	if parsed.Year() != now.Year() {
		t.Errorf("Today() year = %d, want %d", parsed.Year(), now.Year())
	}
}

func TestTableNames(t *testing.T) {
	if got := (User{}).TableName(); got != "users" {
		t.Errorf("User table = %q, want users", got)
	}
	if got := (Exercise{}).TableName(); got != "exercises" {
		t.Errorf("Exercise table = %q, want exercises", got)
	}
}
