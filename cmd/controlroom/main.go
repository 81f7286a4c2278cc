// Controlroom drives an unattended control-room display.
//
// It polls a feed of active screens, shows a map when nothing needs
// attention and switches to a tiled dashboard when screens appear. A
// keyboard or network remote moves focus between tiles, opens a screen in
// detail and returns to the map.
//
// Usage:
//
//	controlroom [command] [flags]
//
// Running without arguments starts the display ("controlroom run").
// See 'controlroom --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/controlroom/internal/config"
	"github.com/muurk/controlroom/internal/logging"
	"github.com/muurk/controlroom/internal/ui"
	"github.com/muurk/controlroom/internal/version"
)

// Global flags
var (
	configPath string
	logLevel   string
	logFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "controlroom",
	Short: "Control room display",
	Long: `Drives a control-room display from a feed of active screens.

The display starts on the map. When the feed reports screens it switches to
a dashboard of tiles; when the feed empties it falls back to the map.

If no command is specified, the display starts ("controlroom run").`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDisplay(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from "+logging.LogLevelEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stdout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("controlroom %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// loadConfig reads the config file and applies the logging flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) error {
	return logging.InitializeWithOutput(cfg.Log.Level, cfg.Log.File)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default values",
	Example: `  # Create the default config
  controlroom config init

  # Replace an existing file without asking
  controlroom config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			path = p
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			ok := ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "CONFIG EXISTS",
				[]string{path + " already exists", "Its contents will be replaced with the defaults"},
				"overwrite")
			if !ok {
				return nil
			}
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration written", map[string]string{"Path": path})
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}
