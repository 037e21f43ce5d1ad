// Package render computes the presentation state of the four result targets
// and the error banner from a service result.
package render

import (
	"github.com/zjrosen/relens/internal/highlight"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// PlaceholderClass is the class of the empty match summary span.
const PlaceholderClass = "placeholder-text"

// SummaryPlaceholder is the markup shown when there are no matches.
const SummaryPlaceholder = `<span class="` + PlaceholderClass + `">No matches</span>`

// Table row classes.
const (
	ClassOK  = "ok"
	ClassBad = "bad"
)

// State is the complete presentation of one result. It is rebuilt on every
// apply and never patched.
type State struct {
	Theme      styles.Theme
	Translated Translated
	Overlay    Overlay
	Summary    Summary
	Table      Table
	Banner     Banner
}

// Translated is the translated pattern view.
type Translated struct {
	Raw    string
	Tokens []highlight.Token
	Markup string
}

// Overlay is the inline highlight layer drawn over the sample text.
type Overlay struct {
	Markup string
}

// Summary is the match summary view.
type Summary struct {
	Markup string
	Empty  bool
}

// Table is the per-line acceptance table.
type Table struct {
	Rows []Row
}

// Row is one acceptance table row. Line is escaped text.
type Row struct {
	Line   string
	Status string
	Class  string
}

// Banner is the error banner.
type Banner struct {
	Visible bool
	Markup  string
	Message string
}
