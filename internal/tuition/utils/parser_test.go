package utils

import (
	"reflect"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1000000", 1000000, true},
		{" 950000 ", 950000, true},
		{"1e+06", 1000000, true},
		{"1.000.000", 1000000, true},
		{"1.500", 1500, true},
		{"1.000.000,50", 1000000.5, true},
		{"1,000,000", 1000000, true},
		{"1,000,000.25", 1000000.25, true},
		{"12,5", 12.5, true},
		{"Rp 2.500.000", 2500000, true},
		{"Rp.900.000", 900000, true},
		{"-50000", -50000, true},
		{"", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("ParseAmount(%q) = %v,%v want %v,%v", tc.in, got, ok, tc.out, tc.ok)
		}
	}
}

func TestNormalizeID(t *testing.T) {
	cases := map[string]string{
		" A001 ":     "A001",
		"21012345.0": "21012345",
		"00123":      "00123",
		"12.05":      "12.05",
		".0":         ".0",
	}
	for in, want := range cases {
		if got := NormalizeID(in); got != want {
			t.Fatalf("NormalizeID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleName(t *testing.T) {
	cases := map[string]string{
		"  budi   SANTOSO ": "Budi Santoso",
		"siti aminah":       "Siti Aminah",
		"":                  "",
	}
	for in, want := range cases {
		if got := TitleName(in); got != want {
			t.Fatalf("TitleName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeHeader(t *testing.T) {
	if got := NormalizeHeader("  Nama   Mahasiswa "); got != "nama mahasiswa" {
		t.Fatalf("NormalizeHeader = %q", got)
	}
}

func TestUniqueSorted(t *testing.T) {
	got := UniqueSorted([]string{"2024", "", "2023", "2024"})
	if !reflect.DeepEqual(got, []string{"2023", "2024"}) {
		t.Fatalf("UniqueSorted = %v", got)
	}
}
