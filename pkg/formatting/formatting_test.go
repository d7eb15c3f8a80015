package formatting_test

import (
	"errors"
	"testing"

	"github.com/mcggEz/gradalyze/pkg/formatting"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 0, "0 B"},
		{"bytes", 512, 0, "512 B"},
		{"kilobytes", 2048, 0, "2 KB"},
		{"megabytes", 10 * 1024 * 1024, 0, "10 MB"},
		{"fractional with precision", 1536, 1, "1.5 KB"},
		{"negative precision clamps", 2048, -3, "2 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"bare number", "512", 512},
		{"megabytes", "10MB", 10 * 1024 * 1024},
		{"spaced unit", "5 MB", 5 * 1024 * 1024},
		{"lowercase unit", "2kb", 2048},
		{"fractional", "1.5KB", 1536},
		{"padded", "  10MB  ", 10 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if err != nil {
				t.Fatalf("ParseBytes(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBytesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown unit", "10XB"},
		{"no number", "MB"},
		{"garbage", "ten megabytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formatting.ParseBytes(tt.input); err == nil {
				t.Errorf("ParseBytes(%q) should fail", tt.input)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	sizes := []int64{1024, 5 * 1024 * 1024, 10 * 1024 * 1024 * 1024}
	for _, size := range sizes {
		parsed, err := formatting.ParseBytes(formatting.FormatBytes(size, 0))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", size, err)
		}
		if parsed != size {
			t.Errorf("round trip of %d = %d", size, parsed)
		}
	}
}

type record struct {
	Subject string `json:"subject"`
	Units   int    `json:"units"`
}

func TestParseDirectJSON(t *testing.T) {
	got, err := formatting.Parse[record](`{"subject":"CS 101","units":3}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Subject != "CS 101" || got.Units != 3 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseFencedJSON(t *testing.T) {
	content := "Here are the extracted rows:\n```json\n[{\"subject\":\"CS 101\",\"units\":3}]\n```\nDone."
	got, err := formatting.Parse[[]record](content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 1 || got[0].Subject != "CS 101" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestParseBareFence(t *testing.T) {
	content := "```\n{\"subject\":\"GE 1\",\"units\":3}\n```"
	got, err := formatting.Parse[record](content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.Subject != "GE 1" {
		t.Errorf("Subject = %q, want GE 1", got.Subject)
	}
}

func TestParseFailure(t *testing.T) {
	_, err := formatting.Parse[record]("not json at all")
	if !errors.Is(err, formatting.ErrParseFailed) {
		t.Errorf("expected ErrParseFailed, got %v", err)
	}
}
