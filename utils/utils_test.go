package utils

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"visa scan.pdf", "visa_scan.pdf"},
		{"../../etc/passwd", "passwd"},
		{"résumé.docx", "r_sum_.docx"},
		{"normal-name_1.png", "normal-name_1.png"},
		{"", "file"},
		{".", "file"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"it-2025-abc234", "IT-2025-ABC234"},
		{"  IT-2025-ABC234  ", "IT-2025-ABC234"},
		{"It-2025-AbC234", "IT-2025-ABC234"},
	}
	for _, tc := range cases {
		if got := NormalizeCode(tc.in); got != tc.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
