package util

import (
	"fmt"
	"regexp"
	"strings"
)

const maxLabelChars = 63

var (
	nonDNSChars  = regexp.MustCompile(`[^a-z0-9-]`)
	repeatedDash = regexp.MustCompile(`-{2,}`)
)

// DNSLabel converts a string into a valid Kubernetes object name (RFC 1123
// label). It fails when nothing usable is left.
func DNSLabel(s string) (string, error) {
	out := strings.ToLower(s)
	out = strings.NewReplacer(" ", "-", ".", "-", "/", "-", "_", "-", ":", "-").Replace(out)
	out = nonDNSChars.ReplaceAllString(out, "")
	out = repeatedDash.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")
	if len(out) > maxLabelChars {
		out = strings.TrimRight(out[:maxLabelChars], "-")
	}
	if out == "" {
		return "", fmt.Errorf("%q has no characters usable in a resource name", s)
	}
	return out, nil
}
