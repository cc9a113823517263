package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var filenameRe = regexp.MustCompile(`[^\w.\-]`)

// SanitizeFilename strips path components and anything outside
// [word . -] so uploaded names are safe on disk.
func SanitizeFilename(name string) string {
	clean := filenameRe.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" || clean == "." {
		return "file"
	}
	return clean
}

// NormalizeCode canonicalizes a lookup code: trimmed, uppercased.
// Lookup is case-insensitive on input by contract.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
