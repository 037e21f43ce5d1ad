package markup

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// highlightPolicy allows exactly the elements the service and the renderer
// emit: match markers, preformatted wrappers, line breaks, the error prefix,
// and classed spans.
func highlightPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("mark", "pre", "br", "strong")
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z][a-z-]*$`)).OnElements("span")
		policy = p
	})
	return policy
}

// Sanitize strips everything outside the highlight vocabulary from s.
// Script and style content is dropped along with the element.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return highlightPolicy().Sanitize(s)
}
