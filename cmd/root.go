package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/relens/internal/app"
	"github.com/zjrosen/relens/internal/clipboard"
	"github.com/zjrosen/relens/internal/config"
	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/prefs"
	"github.com/zjrosen/relens/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// debugLogFile receives logs when --debug is set.
const debugLogFile = "relens-debug.log"

var (
	version    = "dev"
	cfgFile    string
	debug      bool
	cfg        config.Config
	cfgErr     error
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "relens",
	Short: "A terminal client for plain-language regex translation",
	Long: `relens sends a plain-language pattern description, optional constraints and
sample text to a translation service and shows the translated regex with
syntax highlighting, the matches highlighted inline and a per-line
acceptance table.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/relens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs to "+debugLogFile+" (also "+log.EnvDebug+"=1)")
	rootCmd.PersistentFlags().String("url", "", "translation service base URL")
	rootCmd.PersistentFlags().String("trust", "", "highlight markup trust mode: sniff or strict")

	_ = viper.BindPFlag("service.url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("render.trust_mode", rootCmd.PersistentFlags().Lookup("trust"))

	addInputFlags(rootCmd)
}

func initConfig() {
	setDefaults(viper.GetViper(), config.Defaults())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .relens/config.yaml (current directory)
		// 2. ~/.config/relens/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(config.DefaultConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file found anywhere - create the user default
			if dir := config.DefaultConfigDir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
		} else {
			cfgErr = fmt.Errorf("reading config: %w", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil && cfgErr == nil {
		cfgErr = fmt.Errorf("decoding config: %w", err)
	}
}

const localConfigPath = ".relens/config.yaml"

// setDefaults registers every key so environment and flag bindings resolve
// and Unmarshal sees the full tree.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("service.url", d.Service.URL)
	v.SetDefault("service.timeout", d.Service.Timeout)
	v.SetDefault("service.cache.enabled", d.Service.Cache.Enabled)
	v.SetDefault("service.cache.ttl", d.Service.Cache.TTL)
	v.SetDefault("orchestrator.debounce", d.Orchestrator.Debounce)
	v.SetDefault("orchestrator.sequencing", d.Orchestrator.Sequencing)
	v.SetDefault("ui.scroll_sync_interval", d.UI.ScrollSyncInterval)
	v.SetDefault("ui.copy_feedback", d.UI.CopyFeedback)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("render.trust_mode", d.Render.TrustMode)
	v.SetDefault("state.backend", d.State.Backend)
	v.SetDefault("state.path", d.State.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)

	v.SetEnvPrefix("RELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setup turns on logging and validates the loaded configuration.
func setup(cmd *cobra.Command, _ []string) error {
	if debug || os.Getenv(log.EnvDebug) != "" {
		cleanup, err := log.InitWithTeaLog(debugLogFile, "relens")
		if err != nil {
			return fmt.Errorf("enabling debug log: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "Starting", "version", version, "command", cmd.Name(), "config", viper.ConfigFileUsed())
	}

	if cfgErr != nil {
		return cfgErr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func teardown(*cobra.Command, []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	initial, err := readSnapshot(cmd)
	if err != nil {
		return err
	}

	overrides, err := styles.NewSet(cfg.Theme.FlattenedColors())
	if err != nil {
		return fmt.Errorf("theme colors: %w", err)
	}

	client, shutdown, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Warn(log.CatClient, "Tracing shutdown failed", "error", err)
		}
	}()

	store, err := prefs.Open(cfg.State)
	if err != nil {
		// The session works without persisted state.
		log.Warn(log.CatPrefs, "Falling back to in-memory state", "error", err)
		store = prefs.NewMemoryStore()
	}
	fallback, _ := styles.ParseTheme(cfg.UI.Theme)
	p := prefs.Load(store, fallback)
	defer func() { _ = p.Close() }()

	zone.NewGlobal()
	model := app.New(app.Options{
		Config:    cfg,
		Client:    client,
		Prefs:     p,
		Clipboard: clipboard.NewSystem(),
		Styles:    &overrides,
		Initial:   initial,
		Debug:     logCleanup != nil,
	})
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = program.Run()

	// Cancel requests still in flight
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
