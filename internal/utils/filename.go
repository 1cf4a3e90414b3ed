package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename reduces an uploaded filename to its base name and strips
// anything outside [a-zA-Z0-9._-], so the result is safe to join with the
// upload directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "_" {
		name = "upload"
	}
	return name
}

// UploadFilename builds the stored name for an uploaded file:
// <timestamp>_<sanitized-original-name>. The nanosecond timestamp keeps
// replacements unique so the old file can be deleted safely afterwards.
func UploadFilename(original string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), SanitizeFilename(original))
}

// ExtAllowedSet builds a lookup set of dot-prefixed, lower-cased extensions
// from config values like ["png", "jpg"].
func ExtAllowedSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set["."+e] = struct{}{}
		}
	}
	return set
}

// ExtAllowed reports whether the filename's extension is in the set,
// case-insensitively.
func ExtAllowed(set map[string]struct{}, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := set[ext]
	return ok
}
