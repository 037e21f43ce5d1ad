package cmd

import (
	"fmt"
	"html"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/relens/internal/highlight"
	"github.com/zjrosen/relens/internal/ui/styles"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [translated-pattern]",
	Short: "Show how a translated pattern is classified for highlighting",
	Long: `Print the display tokens of a translated regex, one per line with its
category and byte offset. Reads stdin when no argument is given. Works offline.`,
	Example: `  relens tokens '(?:\d{3})-[a-z]+|x*'
  echo '\w+@\w+' | relens tokens --color`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().Bool("color", false, "print the highlighted pattern instead of the token table")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	var pattern string
	if len(args) == 1 {
		pattern = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		pattern = strings.TrimRight(string(data), "\r\n")
	}

	out := cmd.OutOrStdout()
	if color, _ := cmd.Flags().GetBool("color"); color {
		theme, _ := styles.ParseTheme(cfg.UI.Theme)
		set, err := styles.NewSet(cfg.Theme.FlattenedColors())
		if err != nil {
			return fmt.Errorf("theme colors: %w", err)
		}
		_, err = fmt.Fprintln(out, highlight.Highlight(pattern, set.For(theme)))
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tCATEGORY\tTEXT")
	for _, tok := range highlight.Tokenize(pattern) {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", tok.Pos, tok.Category, html.UnescapeString(tok.Text))
	}
	return tw.Flush()
}
