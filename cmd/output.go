package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zjrosen/relens/internal/render"
	"github.com/zjrosen/relens/internal/service"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// Output formats of run and watch.
const (
	formatText = "text"
	formatHTML = "html"
	formatJSON = "json"
)

func validFormat(f string, allowed ...string) error {
	for _, a := range allowed {
		if f == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want %s)", f, strings.Join(allowed, ", "))
}

// headlessRenderer renders with the configured initial theme.
func headlessRenderer() (*render.Renderer, error) {
	set, err := styles.NewSet(cfg.Theme.FlattenedColors())
	if err != nil {
		return nil, fmt.Errorf("theme colors: %w", err)
	}
	theme, _ := styles.ParseTheme(cfg.UI.Theme)
	return render.New(render.Options{
		Trust:  cfg.Render.Trust(),
		Theme:  render.FixedTheme(theme),
		Styles: &set,
	}), nil
}

// writeState prints s in the text or html format.
func writeState(w io.Writer, format string, r *render.Renderer, s render.State) error {
	if format == formatHTML {
		_, err := io.WriteString(w, render.HTML(s))
		return err
	}

	v := r.Terminal(s, 0)
	var b strings.Builder
	if v.Banner != "" {
		b.WriteString(v.Banner + "\n\n")
	}
	section := func(title, body string) {
		if body == "" {
			return
		}
		b.WriteString(title + "\n")
		b.WriteString(body + "\n\n")
	}
	section("Translated", v.Translated)
	section("Highlights", v.Overlay)
	section("Matches", v.Summary)
	section("Acceptance", v.Table)

	_, err := io.WriteString(w, strings.TrimRight(b.String(), "\n")+"\n")
	return err
}

// writeResult prints the raw service result as JSON.
func writeResult(w io.Writer, res service.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
