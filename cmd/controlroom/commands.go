package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/config"
	"github.com/muurk/controlroom/internal/discovery"
	"github.com/muurk/controlroom/internal/display"
	"github.com/muurk/controlroom/internal/engine"
	"github.com/muurk/controlroom/internal/feed"
	"github.com/muurk/controlroom/internal/layout"
	"github.com/muurk/controlroom/internal/logging"
	"github.com/muurk/controlroom/internal/metrics"
	"github.com/muurk/controlroom/internal/navigation"
	"github.com/muurk/controlroom/internal/remote"
	"github.com/muurk/controlroom/internal/screen"
	"github.com/muurk/controlroom/internal/ui"
	"github.com/muurk/controlroom/internal/wizard"
)

// Display command flags
var (
	feedURL      string
	remoteListen string
	headless     bool
	noDiscovery  bool
	jsonOutput   bool
	gapFlag      float64
)

func init() {
	runCmd.Flags().StringVar(&feedURL, "feed", "", "Feed base URL (skips discovery)")
	runCmd.Flags().StringVar(&remoteListen, "remote", "", "Enable the network remote on this address (e.g. :8090)")
	runCmd.Flags().BoolVar(&headless, "headless", false, "Run without the terminal display")
	runCmd.Flags().BoolVar(&noDiscovery, "no-discovery", false, "Do not look for the feed over mDNS")
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	layoutCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the plan as JSON")
	layoutCmd.Flags().Float64Var(&gapFlag, "gap", layout.DefaultGap, "Inter-tile gap in percent")

	feedPollCmd.Flags().StringVar(&feedURL, "feed", "", "Feed base URL (skips discovery)")
	feedPollCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print screens as JSON")

	feedServeCmd.Flags().StringVar(&serveFile, "file", "", "YAML screens file to serve")
	feedServeCmd.Flags().StringVar(&serveListen, "listen", ":8080", "Listen address")
	feedServeCmd.Flags().StringVar(&serveEndpoint, "endpoint", feed.DefaultEndpoint, "Path the screen list is served on")
	feedServeCmd.Flags().StringVar(&serveAdvertise, "advertise", "", "Advertise over mDNS under this instance name")

	setupCmd.Flags().BoolVar(&noDiscovery, "no-discovery", false, "Start at the settings screen")

	feedDiscoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", discovery.DefaultScanTimeout, "How long to browse")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(feedServeCmd)
	feedCmd.AddCommand(feedPollCmd)
	feedCmd.AddCommand(feedDiscoverCmd)
}

// runCmd starts the display
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the display",
	Long: `Start the display: poll the feed and switch between map, dashboard
and detail views.

The feed URL comes from --feed, the config file, or mDNS discovery of a
"_controlroom-feed._tcp" service, in that order. While the terminal display
runs, logs go to the configured log file (or controlroom.log in the config
directory) so they do not corrupt the screen.`,
	Example: `  # Terminal display with auto-discovery
  controlroom run

  # Explicit feed and a network remote
  controlroom run --feed http://10.0.0.5:8080 --remote :8090

  # No terminal; drive it through the network remote only
  controlroom run --headless --remote :8090 --log-level info`,
	RunE: runDisplay,
}

func runDisplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if remoteListen != "" {
		cfg.Remote.Enabled = true
		cfg.Remote.Listen = remoteListen
	}
	if noDiscovery {
		cfg.Discovery.Enabled = false
	}
	if !headless && cfg.Log.File == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		cfg.Log.File = filepath.Join(dir, "controlroom.log")
	}
	if err := initLogging(cfg); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := feedClient(ctx, cfg)
	if err != nil {
		return err
	}
	recorder := metrics.New()
	client.Observer = recorder

	events := make(chan engine.Event, 16)
	send := func(ev engine.Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	poller := feed.NewPoller(client)
	poller.Interval = cfg.Feed.Interval
	poller.StartDelay = cfg.Feed.StartDelay
	go func() {
		_ = poller.Run(ctx, func(res *feed.Result, err error) {
			send(snapshotOf(res, err))
		})
	}()

	opts := engine.Options{
		Timing:   cfg.Timing.Engine(),
		Gap:      cfg.Layout.Gap,
		PanStep:  cfg.Layout.PanStep,
		Observer: recorder,
	}

	wrap := func(s engine.Surface) engine.Surface { return s }
	if cfg.Remote.Enabled {
		rs := remote.New(&remote.Config{
			Listen:         cfg.Remote.Listen,
			AllowedOrigins: cfg.Remote.AllowedOrigins,
		}, send)
		rs.SetMetrics(recorder.Handler())
		go func() {
			if err := rs.Start(ctx); err != nil {
				logging.Error("Remote control stopped", zap.Error(err))
			}
		}()
		wrap = rs.Surface
	}

	logging.Info("Display starting",
		zap.String("feed", client.URL()),
		zap.Bool("headless", headless),
		zap.Bool("remote", cfg.Remote.Enabled),
	)

	if headless {
		return runHeadless(ctx, opts, wrap(logSurface{}), events, send)
	}
	return display.Run(ctx, display.Config{
		Engine:      opts,
		WrapSurface: wrap,
		Events:      events,
		AltScreen:   true,
	})
}

func runHeadless(ctx context.Context, opts engine.Options, surface engine.Surface, events <-chan engine.Event, send func(engine.Event)) error {
	opts.Surface = surface
	opts.Scheduler = engine.NewTimerScheduler(send)
	eng := engine.New(opts)
	eng.Dispatch(engine.Start{})
	// nothing to load without a terminal map
	eng.Dispatch(engine.MapReady{})

	err := eng.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logSurface reports every frame in the log
type logSurface struct{}

func (logSurface) Render(f engine.Frame) error {
	fields := []zap.Field{
		zap.String("state", f.State.String()),
		zap.Bool("map_locked", f.MapLocked),
		zap.Int("screens", f.Screens),
	}
	if t, ok := f.FocusedTile(); ok {
		fields = append(fields, zap.Int("focused", t.ID))
	}
	if f.Detail != nil {
		fields = append(fields, zap.Int("detail", f.Detail.Screen.ID), zap.Int("widget", f.Detail.Widget))
	}
	logging.Debug("Frame", fields...)
	return nil
}

func snapshotOf(res *feed.Result, err error) engine.Snapshot {
	if err != nil {
		return engine.Snapshot{Err: err}
	}
	for _, p := range res.Dropped {
		logging.Debug("Feed entry dropped", zap.Error(p))
	}
	return engine.Snapshot{Screens: res.Screens}
}

// feedClient resolves the feed location from flags, config or mDNS
func feedClient(ctx context.Context, cfg *config.Config) (*feed.Client, error) {
	base := cfg.Feed.URL
	if feedURL != "" {
		base = feedURL
	}
	endpoint := ""

	if base == "" {
		if !cfg.Discovery.Enabled {
			return nil, fmt.Errorf("no feed URL: set --feed or feed.url, or enable discovery")
		}
		scanner := discovery.NewScanner()
		scanner.Timeout = cfg.Discovery.Timeout
		svc, err := scanner.First(ctx)
		if err != nil {
			return nil, fmt.Errorf("feed discovery failed: %w", err)
		}
		base = svc.BaseURL()
		endpoint = svc.Path
	}

	client := cfg.Feed.Client(base)
	if endpoint != "" {
		client.Endpoint = endpoint
	}
	return client, nil
}

// layoutCmd prints the plan and navigation table for N screens
var layoutCmd = &cobra.Command{
	Use:   "layout N",
	Short: "Show the tile layout for N screens",
	Long: `Show the layout plan and the navigation table for N screens, map
tile included. Useful to check how the wall will look before screens arrive.`,
	Example: `  controlroom layout 7
  controlroom layout 14 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid screen count %q", args[0])
		}

		plan := layout.ComputeGap(n, gapFlag)
		screens := demoScreens(n)
		graph := navigation.Build(screens, plan)

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("Layout", "controlroom layout "+args[0], map[string]string{
			"Screens": strconv.Itoa(n),
			"Gap":     strconv.FormatFloat(gapFlag, 'f', -1, 64) + "%",
		})
		p.Newline()
		p.Println(ui.RenderPlan(plan))
		p.Newline()
		if table := ui.RenderGraph(graph); table != "" {
			p.Println(table)
			p.Newline()
		}
		p.PrintSuccess(plan.String(), ui.RenderPlanDetails(plan))
		return nil
	},
}

// demoScreens returns n screens with ids 0..n-1
func demoScreens(n int) []screen.Screen {
	entries := make([]screen.Entry, 0, n)
	for i := 0; i < n; i++ {
		id := i
		entries = append(entries, screen.Entry{ID: &id, Active: true})
	}
	screens, _ := screen.Normalize(entries)
	return screens
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Feed tools: serve a demo feed, poll or discover one",
}

var feedPollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Fetch the screen list once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := initLogging(cfg); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := feedClient(ctx, cfg)
		if err != nil {
			return err
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		started := time.Now()
		res, err := client.Fetch(ctx)
		if err != nil {
			if jsonOutput {
				return err
			}
			p.PrintError("Feed unavailable", err, []string{
				"Check the feed URL: " + client.URL(),
				"Unreachable feeds show the map on the display",
			})
			return fmt.Errorf("poll failed: %s", feed.ShortMessage(err))
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.Screens)
		}

		p.PrintHeader("Feed", "controlroom feed poll", map[string]string{"URL": client.URL()})
		for _, s := range res.Screens {
			p.Println("  " + s.String())
		}
		p.Newline()

		details := map[string]string{
			"Screens":  strconv.Itoa(len(res.Screens)),
			"Attempts": strconv.Itoa(res.Attempts),
			"Took":     time.Since(started).Round(time.Millisecond).String(),
		}
		if len(res.Dropped) > 0 {
			details["Dropped"] = strconv.Itoa(len(res.Dropped))
			p.PrintWarning("Some entries were dropped", details)
			return nil
		}
		p.PrintSuccess("Feed reachable", details)
		return nil
	},
}

// Feed server flags
var (
	serveFile      string
	serveListen    string
	serveEndpoint  string
	serveAdvertise string
)

var feedServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a YAML screens file as a demo feed",
	Long: `Serve a YAML screens file in the feed wire format. The file is reloaded
when it changes, so editing it drives the display live.

  screens:
    - id: 1
      name: Pump station
      active: true`,
	Example: `  controlroom feed serve --file screens.yaml
  controlroom feed serve --file screens.yaml --listen :9000 --advertise lobby`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := initLogging(cfg); err != nil {
			return err
		}
		defer logging.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := feed.NewServer(serveFile, serveEndpoint)
		if err != nil {
			return err
		}
		srv.OnReload(func(count int) {
			logging.Info("Screens file reloaded", zap.Int("screens", count))
		})
		if serveFile != "" {
			go func() {
				if err := srv.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logging.Error("Screens file watch stopped", zap.Error(err))
				}
			}()
		}

		listener, err := net.Listen("tcp", serveListen)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", serveListen, err)
		}

		if serveAdvertise != "" {
			ad, err := discovery.Advertise(serveAdvertise, discovery.PortOf(listener.Addr()), srv.Endpoint())
			if err != nil {
				_ = listener.Close()
				return err
			}
			defer ad.Shutdown()
		}

		httpServer := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()

		ui.NewPrinter(cmd.OutOrStdout()).PrintHeader("Demo feed", "controlroom feed serve", map[string]string{
			"Listen":   listener.Addr().String(),
			"Endpoint": srv.Endpoint(),
			"Screens":  strconv.Itoa(len(srv.Items())),
		})

		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

var discoverTimeout time.Duration

var feedDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse for feed services over mDNS",
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := discovery.NewScanner()
		scanner.Timeout = discoverTimeout

		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("Discover", "controlroom feed discover", map[string]string{
			"Service": discovery.ServiceType,
			"Timeout": discoverTimeout.String(),
		})

		services, err := scanner.Scan(cmd.Context())
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if len(services) == 0 {
			p.PrintError("No feed services found", nil, []string{
				"Start one with 'controlroom feed serve --advertise <name>'",
				"Check that multicast traffic is allowed on this network",
				"Try increasing --timeout",
			})
			return nil
		}

		for _, svc := range services {
			p.Println("  " + svc.String() + " " + svc.Path)
		}
		p.Newline()
		p.PrintSuccess(fmt.Sprintf("Found %d feed service(s)", len(services)), nil)
		return nil
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup: find a feed and write the config file",
	Long: `Interactive setup. Browses for feed services over mDNS (or takes a typed
URL), then edits the feed, poll interval, remote and log settings and writes
them to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if configPath != "" {
			path = configPath
		}

		app := wizard.New(cfg, path, nil)
		if noDiscovery || !cfg.Discovery.Enabled {
			app = wizard.NewAtSettings(cfg, path)
		}

		final, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		result, _ := final.(wizard.AppModel)
		switch {
		case result.SaveErr != nil:
			p.PrintError("Config not saved", result.SaveErr, []string{"Check that " + path + " is writable"})
			return result.SaveErr
		case result.Saved != nil:
			p.PrintSuccess("Config saved", map[string]string{"Path": path})
		default:
			p.PrintWarning("Setup cancelled", map[string]string{"Path": path})
		}
		return nil
	},
}
