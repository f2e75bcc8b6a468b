package domain

import "testing"

func TestNewDateRange(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want *DateRange
	}{
		{"both empty", "", "", nil},
		{"from only", "2024-01-01", "", &DateRange{From: "2024-01-01"}},
		{"to only", "", "2024-02-01", &DateRange{To: "2024-02-01"}},
		{"both", "2024-01-01", "2024-02-01", &DateRange{From: "2024-01-01", To: "2024-02-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDateRange(tt.from, tt.to)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("NewDateRange(%q, %q) = %+v, want nil", tt.from, tt.to, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("NewDateRange(%q, %q) = nil, want %+v", tt.from, tt.to, tt.want)
			}
			if got.From != tt.want.From || got.To != tt.want.To {
				t.Errorf("NewDateRange(%q, %q) = %+v, want %+v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNewLogFilter(t *testing.T) {
	f := NewLogFilter("alice", "", "", 0)
	if f.Username != "alice" {
		t.Errorf("Username = %q, want alice", f.Username)
	}
	if f.Date != nil {
		t.Errorf("Date = %+v, want nil when no bounds supplied", f.Date)
	}
	if f.Limit != 0 {
		t.Errorf("Limit = %d, want 0", f.Limit)
	}

	f = NewLogFilter("bob", "2024-01-01", "", 5)
	if f.Date == nil || f.Date.From != "2024-01-01" || f.Date.To != "" {
		t.Errorf("Date = %+v, want from-only range", f.Date)
	}
	if f.Limit != 5 {
		t.Errorf("Limit = %d, want 5", f.Limit)
	}
}
