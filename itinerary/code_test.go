package itinerary

import (
	"regexp"
	"strings"
	"testing"
)

var codeRe = regexp.MustCompile(`^IT-\d{4}-[A-Z0-9]{6}$`)

func TestGenerateCodeFormat(t *testing.T) {
	code, err := GenerateCode()
	if err != nil {
		t.Fatal(err)
	}
	if !codeRe.MatchString(code) {
		t.Fatalf("code %q does not match IT-YYYY-XXXXXX", code)
	}
	suffix := code[len(code)-6:]
	for _, c := range suffix {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("code %q uses %q outside the unambiguous alphabet", code, c)
		}
	}
}

func TestGenerateCodeNoAmbiguousChars(t *testing.T) {
	for _, banned := range "0O1I" {
		if strings.ContainsRune(codeAlphabet, banned) {
			t.Errorf("alphabet must exclude %q", banned)
		}
	}
	if len(codeAlphabet) != 32 {
		t.Errorf("alphabet must have 32 symbols, has %d", len(codeAlphabet))
	}
}

func TestGenerateCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatal(err)
		}
		if seen[code] {
			t.Fatalf("collision after %d generations: %s", i, code)
		}
		seen[code] = true
	}
}
