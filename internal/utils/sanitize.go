package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from user-generated text (bios,
// confessions, messages, drops). Clients receive plain text only.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
