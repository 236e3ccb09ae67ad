package contact

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes HTML tags and comments from s. Text between tags is kept
// as written, entities included.
func StripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var out bytes.Buffer
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input, either way keep what was read.
			return out.String()
		case html.TextToken:
			out.Write(z.Raw())
		}
	}
}

// SanitizeEmail drops every character that cannot appear in an address:
// anything but letters, digits and !#$%&'*+-=?^_`{|}~@.[]
func SanitizeEmail(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune("!#$%&'*+-=?^_`{|}~@.[]", r):
			return r
		}
		return -1
	}, s)
}
