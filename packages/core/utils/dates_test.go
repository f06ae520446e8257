package utils

import (
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2025, time.January, 12, 23, 45, 10, 500, loc)

	got := DateOnly(in)
	want := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOnly = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("location = %v, want UTC", got.Location())
	}
	if !DateOnly(time.Time{}).IsZero() {
		t.Fatal("expected zero time to stay zero")
	}
	if DateOnlyPtr(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2014-03-15")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if want := time.Date(2014, time.March, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("15/03/2014"); err == nil {
		t.Fatal("expected error for malformed date")
	}

	empty := ""
	opt, err := ParseOptionalDate(&empty)
	if err != nil || opt != nil {
		t.Fatalf("ParseOptionalDate(\"\") = %v, %v; want nil, nil", opt, err)
	}
}
