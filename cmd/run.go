package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/relens/internal/log"
)

// errRunFailed is returned when the service reports an error, so the exit
// status reflects it after the banner has been printed.
var errRunFailed = errors.New("translation failed")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Translate once and print the result",
	Long: `Send the inputs to the translation service once and print the rendered
result. Inputs come from flags or files; --text-file - reads stdin.`,
	Example: `  relens run --pattern "three digits then a dash" --text-file samples.txt
  relens run --pattern "an email address" --format json < /dev/null`,
	RunE: runOnce,
}

func init() {
	addInputFlags(runCmd)
	runCmd.Flags().StringP("format", "f", formatText, "output format: text, html or json")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validFormat(format, formatText, formatHTML, formatJSON); err != nil {
		return err
	}

	snap, err := readSnapshot(cmd)
	if err != nil {
		return err
	}
	if snap.IsEmpty() {
		return fmt.Errorf("nothing to translate: set --pattern or --pattern-file")
	}

	renderer, err := headlessRenderer()
	if err != nil {
		return err
	}
	client, shutdown, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(cmd.Context()) }()

	res := client.Run(cmd.Context(), snap)
	log.Debug(log.CatClient, "One-shot run finished", "failed", res.Failed())

	out := cmd.OutOrStdout()
	if format == formatJSON {
		err = writeResult(out, res)
	} else {
		err = writeState(out, format, renderer, renderer.Apply(res, snap.Text))
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if res.Failed() {
		return errRunFailed
	}
	return nil
}
