package utils

import "strings"

// NormalizeEmail lower-cases and trims an email address. An empty result
// means no usable email was supplied.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseTags splits a comma-separated tag string into a clean slice,
// dropping empty entries and surrounding whitespace.
func ParseTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
