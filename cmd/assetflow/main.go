package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/altinukshini/assetflow-tui/internal/api"
	"github.com/altinukshini/assetflow-tui/internal/auth"
	"github.com/altinukshini/assetflow-tui/internal/cache"
	"github.com/altinukshini/assetflow-tui/internal/config"
	"github.com/altinukshini/assetflow-tui/internal/logging"
	"github.com/altinukshini/assetflow-tui/internal/metrics"
	"github.com/altinukshini/assetflow-tui/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath  string
	apiURL      string
	logLevel    string
	logFile     string
	metricsAddr string
}

func rootCmd() *cobra.Command {
	var (
		flags globalFlags
		open  string
	)

	cmd := &cobra.Command{
		Use:   "assetflow",
		Short: "Terminal dashboard for AssetFlow",
		Long: `assetflow browses the assets, movements, vendors and costing records of an
AssetFlow server. Press / anywhere to search every screen at once; opening
a result jumps to its page and highlights the row.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(&flags, open)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&flags.apiURL, "api-url", "", "AssetFlow API base URL")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFile, "log-file", "", "Log file path")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	cmd.Flags().StringVar(&open, "open", "", "Start at a link such as /assets?highlight=42")

	cmd.AddCommand(searchCmd(&flags))
	cmd.AddCommand(loginCmd(&flags))
	cmd.AddCommand(logoutCmd(&flags))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("assetflow", version)
		},
	})

	return cmd
}

// env is everything a command needs, built from config and flags.
type env struct {
	cfg     config.Config
	log     *logrus.Logger
	metrics *metrics.Metrics
	client  *api.Client
	store   *auth.Store
	session auth.Session

	closers []io.Closer
}

func setup(flags *globalFlags) (*env, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.apiURL != "" {
		cfg.APIURL = flags.apiURL
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.metricsAddr != "" {
		cfg.MetricsAddr = flags.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	e.metrics = metrics.New()
	if cfg.MetricsAddr != "" {
		e.closers = append(e.closers, e.metrics.Serve(cfg.MetricsAddr, log))
		log.WithField("addr", cfg.MetricsAddr).Info("metrics server listening")
	}

	e.store = auth.NewStore(cfg.SessionFile)
	sess, err := e.store.Load()
	switch {
	case errors.Is(err, auth.ErrNoSession):
	case err != nil:
		log.WithError(err).Warn("ignoring unreadable session")
	case sess.Expired(time.Now()):
		log.WithField("user", sess.User.Email).Info("stored session expired")
	default:
		e.session = sess
	}

	e.client = api.NewClient(cfg.APIURL,
		api.WithCache(cache.NewResponseCache(cfg.CacheEntries, cfg.CacheTTL)),
		api.WithLogger(log),
		api.WithMetrics(e.metrics),
		api.WithToken(e.session.Token),
	)
	log.WithFields(logrus.Fields{
		"api_url": e.client.BaseURL(),
		"version": version,
	}).Debug("client ready")
	return e, nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

func (e *env) requireSession() error {
	if e.session.Token == "" {
		return errors.New("not signed in, run 'assetflow login'")
	}
	return nil
}

func (e *env) context() (context.Context, context.CancelFunc) {
	if e.cfg.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), e.cfg.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}

func runTUI(flags *globalFlags, open string) error {
	e, err := setup(flags)
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.requireSession(); err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithSessionStore(e.store),
		tui.WithLogger(e.log),
		tui.WithMetrics(e.metrics),
	}
	if e.session.User.Email != "" {
		user := e.session.User
		opts = append(opts, tui.WithUser(&user))
	}
	if open != "" {
		opts = append(opts, tui.WithStartLink(open))
	}

	app := tui.NewApp(e.cfg, e.client, opts...)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
