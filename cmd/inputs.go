package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/relens/internal/service"
)

// inputField names one snapshot field and its two flags.
type inputField struct {
	name string
	set  func(*service.Snapshot, string)
}

var inputFields = []inputField{
	{"pattern", func(s *service.Snapshot, v string) { s.Pattern = v }},
	{"constraints", func(s *service.Snapshot, v string) { s.Constraints = v }},
	{"text", func(s *service.Snapshot, v string) { s.Text = v }},
}

// addInputFlags adds --pattern, --constraints, --text and their -file forms.
func addInputFlags(cmd *cobra.Command) {
	for _, f := range inputFields {
		cmd.Flags().String(f.name, "", "initial "+f.name)
		cmd.Flags().String(f.name+"-file", "", "read "+f.name+" from a file (- for stdin)")
	}
}

// inputFiles returns the file flags that are set, in field order.
func inputFiles(cmd *cobra.Command) []string {
	var paths []string
	for _, f := range inputFields {
		if p, _ := cmd.Flags().GetString(f.name + "-file"); p != "" && p != "-" {
			paths = append(paths, p)
		}
	}
	return paths
}

// readSnapshot builds a snapshot from the input flags. A value flag wins over
// its file flag.
func readSnapshot(cmd *cobra.Command) (service.Snapshot, error) {
	var s service.Snapshot
	stdinUsed := false
	for _, f := range inputFields {
		if v, _ := cmd.Flags().GetString(f.name); v != "" {
			f.set(&s, v)
			continue
		}
		path, _ := cmd.Flags().GetString(f.name + "-file")
		if path == "" {
			continue
		}

		var (
			data []byte
			err  error
		)
		if path == "-" {
			if stdinUsed {
				return s, fmt.Errorf("--%s-file: stdin is already used by another input", f.name)
			}
			stdinUsed = true
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path) //nolint:gosec // G304: user chosen input file
		}
		if err != nil {
			return s, fmt.Errorf("reading %s: %w", f.name, err)
		}
		f.set(&s, string(data))
	}
	return s, nil
}
