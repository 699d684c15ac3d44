package libs

import "github.com/microcosm-cc/bluemonday"

// HTMLSanitizer strips scripts, event handlers and unsafe URLs from user
// supplied HTML while keeping ordinary formatting.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return &HTMLSanitizer{policy: policy}
}

func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
