// internal/bot/text.go
package bot

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// sanitize collapses every run of whitespace into a single space.
func sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fixEncoding repairs text some clients send as windows-1251 instead of UTF-8.
func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	fixed, err := charmap.Windows1251.NewDecoder().String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}
	return strings.ToValidUTF8(s, "")
}

// command splits "/add@MyBot 12 food" into "/add" and "12 food".
func command(text string) (string, string) {
	name, args, _ := strings.Cut(text, " ")
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	return strings.ToLower(name), strings.TrimSpace(args)
}
