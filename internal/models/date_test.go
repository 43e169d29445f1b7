// ABOUTME: Tests for the civil Date type.
// ABOUTME: Covers parsing, ordering, epoch-day conversion and text encodings.
package models

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
		want    Date
		wantErr bool
	}{
		{name: "plain date", input: "2024-06-10", want: Date{2024, time.June, 10}},
		{name: "leap day", input: "2024-02-29", want: Date{2024, time.February, 29}},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "wrong order", input: "10-06-2024", wantErr: true},
		{name: "with time", input: "2024-06-10T08:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{2024, time.January, 31}
	b := Date{2024, time.February, 1}
	c := Date{2025, time.January, 1}

	if !a.Before(b) || !b.Before(c) || !a.Before(c) {
		t.Error("expected a < b < c")
	}
	if !c.After(a) {
		t.Error("expected c after a")
	}
	if a.Compare(a) != 0 {
		t.Error("expected a == a")
	}
	if b.Before(a) {
		t.Error("b should not be before a")
	}
}

func TestDateFromEpochDays(t *testing.T) {
	tests := []struct {
		days int32
		want Date
	}{
		{0, Date{1970, time.January, 1}},
		{19723, Date{2024, time.January, 1}},
		{19995, Date{2024, time.September, 29}},
		{-1, Date{1969, time.December, 31}},
	}
	for _, tt := range tests {
		if got := DateFromEpochDays(tt.days); got != tt.want {
			t.Errorf("DateFromEpochDays(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestDateEncoding(t *testing.T) {
	d := Date{2024, time.April, 7}

	data, err := json.Marshal(struct {
		D Date `json:"d"`
	}{d})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(data) != `{"d":"2024-04-07"}` {
		t.Errorf("json = %s", data)
	}

	var back struct {
		D Date `json:"d"`
	}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if back.D != d {
		t.Errorf("json round trip = %v, want %v", back.D, d)
	}

	y, err := yaml.Marshal(map[string]Date{"d": d})
	if err != nil {
		t.Fatalf("yaml.Marshal failed: %v", err)
	}
	if string(y) != "d: \"2024-04-07\"\n" && string(y) != "d: 2024-04-07\n" {
		t.Errorf("yaml = %q", y)
	}
}
