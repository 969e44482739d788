package utils

import "strings"

// DefaultSubject is used when sanitization leaves nothing of a subject name.
const DefaultSubject = "default_subject"

// SanitizeSubject maps a subject name to the form used for both the upload
// directory and the vector collection. Non-alphanumeric runes become
// underscores; an empty result falls back to DefaultSubject. Sanitizing an
// already-sanitized name yields the same name.
func SanitizeSubject(subject string) string {
	var b strings.Builder
	for _, r := range subject {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return DefaultSubject
	}
	return b.String()
}
