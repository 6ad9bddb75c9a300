package store

import "strings"

// emptyLiterals are the raw values treated as "nothing stored" even though
// a value is present under the key. Serializers in earlier releases wrote
// these placeholders instead of removing the key.
var emptyLiterals = map[string]bool{
	"":     true,
	"{}":   true,
	"null": true,
}

// isEmptyOrAbsent reports whether a raw primary value should be treated as
// absent: blank after trimming, the literal empty-object text, or the
// literal null text. Pure; the caller handles the missing-key case.
func isEmptyOrAbsent(raw string) bool {
	return emptyLiterals[strings.TrimSpace(raw)]
}
