package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Valid date", "2024-03-15", "2024-03-15", false},
		{"Leap day", "2024-02-29", "2024-02-29", false},
		{"Surrounding whitespace", " 2024-01-01 ", "2024-01-01", false},
		{"Invalid day", "2023-02-29", "", true},
		{"Month layout rejected", "2024-03", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestMustParseDatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustParseDate to panic on invalid input")
		}
	}()
	MustParseDate("not-a-date")
}

func TestNewDateTruncates(t *testing.T) {
	ts := time.Date(2024, 5, 10, 23, 59, 59, 0, time.FixedZone("x", 3600))
	if got := NewDate(ts).String(); got != "2024-05-10" {
		t.Errorf("NewDate() = %s, expected 2024-05-10", got)
	}
}

func TestAddDaysAndDaysUntil(t *testing.T) {
	start := MustParseDate("2024-02-27")

	tests := []struct {
		name string
		days int
		want string
	}{
		{"Across leap day", 3, "2024-03-01"},
		{"Zero offset", 0, "2024-02-27"},
		{"Backwards", -27, "2024-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := start.AddDays(tt.days)
			if got.String() != tt.want {
				t.Errorf("AddDays(%d) = %s, expected %s", tt.days, got, tt.want)
			}
			if back := start.DaysUntil(got); back != tt.days {
				t.Errorf("DaysUntil() = %d, expected %d", back, tt.days)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	a := MustParseDate("2024-01-01")
	b := MustParseDate("2024-01-02")
	if !a.Before(b) || a.After(b) {
		t.Errorf("expected %s before %s", a, b)
	}
	if !b.After(a) || b.Before(a) {
		t.Errorf("expected %s after %s", b, a)
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2024-06-01"}`), &payload); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if payload.Date.String() != "2024-06-01" {
		t.Fatalf("unexpected date %s", payload.Date)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(out) != `{"date":"2024-06-01"}` {
		t.Errorf("unexpected encoding %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":""}`), &payload); err != nil {
		t.Fatalf("empty date should be accepted: %v", err)
	}
	if !payload.Date.IsZero() {
		t.Errorf("expected zero date, got %s", payload.Date)
	}

	if err := json.Unmarshal([]byte(`{"date":20240601}`), &payload); err == nil {
		t.Error("expected error for numeric date")
	}
}

func TestDateYAML(t *testing.T) {
	var payload struct {
		Date Date `yaml:"date"`
	}
	if err := yaml.Unmarshal([]byte("date: 2024-06-01\n"), &payload); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if payload.Date.String() != "2024-06-01" {
		t.Fatalf("unexpected date %s", payload.Date)
	}

	if err := yaml.Unmarshal([]byte("date: [2024]\n"), &payload); err == nil {
		t.Error("expected error for sequence date")
	}
}
