// Package markup holds the trust boundary between service output and the
// render targets: escaping of untrusted text, the sniffing rule that decides
// whether a blob is already markup, and conversion of markup fragments to
// terminal text.
package markup

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape maps &, < and > to their entities and leaves every other character
// untouched. Quotes are not escaped; output is only ever used as element content.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}

// markupLike matches highlight markers, complete tags, and tag openers such
// as "<b" that a browser would start parsing as an element.
var markupLike = regexp.MustCompile(`</?mark|<[^>]+>|<[A-Za-z/!]`)

// LooksLikeMarkup reports whether s would be treated as trusted markup by the
// sniffing rule.
func LooksLikeMarkup(s string) bool {
	return markupLike.MatchString(s)
}

// Breaks converts newlines to explicit <br> elements.
func Breaks(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// TrustMode selects how service blobs cross the trust boundary.
type TrustMode string

const (
	// TrustSniff inserts markup-like blobs verbatim and escapes the rest.
	TrustSniff TrustMode = "sniff"
	// TrustStrict escapes plain blobs and sanitizes markup-like blobs down to
	// the highlight vocabulary.
	TrustStrict TrustMode = "strict"
)

// ParseTrustMode returns the mode for s; empty means TrustSniff.
func ParseTrustMode(s string) (TrustMode, bool) {
	switch TrustMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", TrustSniff:
		return TrustSniff, true
	case TrustStrict:
		return TrustStrict, true
	default:
		return "", false
	}
}

// Blob prepares a service blob for insertion into a markup render target.
// Newlines become <br> on both the trusted and the escaped path.
func Blob(s string, mode TrustMode) string {
	if s == "" {
		return ""
	}
	if !LooksLikeMarkup(s) {
		return Breaks(Escape(s))
	}
	if mode == TrustStrict {
		return Sanitize(Breaks(s))
	}
	return Breaks(s)
}
