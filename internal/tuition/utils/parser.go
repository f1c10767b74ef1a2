package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	dotGrouped   = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+(,\d+)?$`)
	commaGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
	commaDecimal = regexp.MustCompile(`^-?\d+,\d+$`)
)

// ParseAmount reads a nominal cell. Indonesian grouping ("1.000.000,50") wins
// over plain float syntax, so "1.500" is fifteen hundred. Blank or unparseable
// values return ok=false and 0.
func ParseAmount(valStr string) (float64, bool) {
	s := strings.TrimSpace(valStr)
	if len(s) >= 2 && strings.EqualFold(s[:2], "rp") {
		s = strings.TrimSpace(strings.TrimPrefix(s[2:], "."))
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	switch {
	case dotGrouped.MatchString(s):
		// Remove thousands separator (.) and replace decimal separator (,) with (.)
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case commaGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case commaDecimal.MatchString(s):
		s = strings.ReplaceAll(s, ",", ".")
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

// NormalizeID trims a student ID and collapses spreadsheet float renderings of
// integral IDs ("2101.0") back to their digits.
func NormalizeID(valStr string) string {
	s := strings.TrimSpace(valStr)
	if whole, ok := strings.CutSuffix(s, ".0"); ok && whole != "" && isDigits(whole) {
		return whole
	}
	return s
}

// TitleName trims and title-cases a person's name.
func TitleName(valStr string) string {
	s := strings.Join(strings.Fields(valStr), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.Indonesian).String(s)
}

// NormalizeHeader trims, lower-cases and collapses inner whitespace of a header cell.
func NormalizeHeader(valStr string) string {
	return strings.ToLower(strings.Join(strings.Fields(valStr), " "))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
