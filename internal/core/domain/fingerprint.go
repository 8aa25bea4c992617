package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the deterministic content hash used for change
// detection. Trailing whitespace and line ending differences are
// normalized first so a checkout on another platform does not register
// as a content change.
func Fingerprint(content string) string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.TrimRight(normalized, "\n") + "\n"
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
