package render

import (
	"strings"

	"github.com/zjrosen/relens/internal/ui/styles"
)

// HTML renders s as a standalone fragment document. Every target is always
// present; the banner is hidden with the hidden attribute when there is no
// error.
func HTML(s State) string {
	var b strings.Builder

	bodyClass := "light"
	if s.Theme == styles.ThemeDark {
		bodyClass = "dark"
	}

	b.WriteString(`<div class="relens ` + bodyClass + `">` + "\n")

	if s.Banner.Visible {
		b.WriteString(`<div id="errorBox" class="error">` + s.Banner.Markup + "</div>\n")
	} else {
		b.WriteString(`<div id="errorBox" class="error" hidden></div>` + "\n")
	}

	b.WriteString(`<pre id="regexBox" class="regex">` + s.Translated.Markup + "</pre>\n")
	b.WriteString(`<pre id="overlayPre" class="overlay">` + s.Overlay.Markup + "</pre>\n")
	b.WriteString(`<div id="matchesBox" class="matches">` + s.Summary.Markup + "</div>\n")

	b.WriteString(`<table id="acceptTable"><thead><tr><th>Line</th><th>Status</th></tr></thead><tbody>`)
	for _, row := range s.Table.Rows {
		b.WriteString(`<tr><td>` + row.Line + `</td><td class="` + row.Class + `">` + row.Status + `</td></tr>`)
	}
	b.WriteString("</tbody></table>\n")

	b.WriteString("</div>\n")
	return b.String()
}
