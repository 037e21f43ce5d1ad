package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/orchestrator"
	"github.com/zjrosen/relens/internal/pubsub"
	"github.com/zjrosen/relens/internal/render"
	"github.com/zjrosen/relens/internal/watcher"
)

// fsSettle coalesces the events of a single save. The orchestrator debounce
// applies on top of it.
const fsSettle = 50 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the translation whenever the input files change",
	Long: `Watch the files given with --pattern-file, --constraints-file and
--text-file and print a fresh result each time edits settle.`,
	Example: `  relens watch --pattern-file pattern.txt --text-file samples.txt`,
	RunE:    runWatch,
}

func init() {
	addInputFlags(watchCmd)
	watchCmd.Flags().StringP("format", "f", formatText, "output format: text or html")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validFormat(format, formatText, formatHTML); err != nil {
		return err
	}
	paths := inputFiles(cmd)
	if len(paths) == 0 {
		return fmt.Errorf("nothing to watch: set at least one of --pattern-file, --constraints-file, --text-file")
	}

	renderer, err := headlessRenderer()
	if err != nil {
		return err
	}
	client, shutdown, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	w, err := watcher.New(watcher.Config{Paths: paths, DebounceDur: fsSettle})
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Stop() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := orchestrator.New(orchestrator.Options{
		Delay:      cfg.Orchestrator.Debounce,
		Sequencing: cfg.Orchestrator.Sequencing,
	})
	driver := orchestrator.NewDriver(orch, client, renderer)
	events := driver.Subscribe(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return driver.Run(ctx)
	})
	g.Go(func() error {
		return feedEdits(ctx, cmd, changes, driver)
	})
	g.Go(func() error {
		return printStates(ctx, cmd, format, renderer, events)
	})
	return g.Wait()
}

// feedEdits reads the inputs once at start and again after every change.
func feedEdits(ctx context.Context, cmd *cobra.Command, changes <-chan struct{}, driver *orchestrator.Driver) error {
	edit := func() {
		snap, err := readSnapshot(cmd)
		if err != nil {
			// A file may be mid-rename; the next event retries.
			log.Warn(log.CatWatcher, "Failed to read inputs", "error", err)
			return
		}
		driver.Edit(snap)
	}

	edit()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			edit()
		}
	}
}

func printStates(ctx context.Context, cmd *cobra.Command, format string, r *render.Renderer, events <-chan pubsub.Event[render.State]) error {
	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type != pubsub.AppliedEvent {
				continue
			}
			fmt.Fprintf(out, "── %s ──\n", ev.Timestamp.Format(time.TimeOnly))
			if err := writeState(out, format, r, ev.Payload); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
	}
}
