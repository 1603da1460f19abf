// Command droplet runs the breathing droplet exercise in the terminal.
package main

import (
	"fmt"
	"os"

	"droplet/internal/config"
	"droplet/internal/logging"
	"droplet/internal/reflection"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	apiKey     string
	model      string
	configPath string

	// Loaded in PersistentPreRunE
	cfg     *config.Config
	cliLogs *logging.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "droplet",
	Short: "呼吸水滴 - a guided breathing droplet, from anxious to calm",
	Long: `droplet is a single-screen breathing exercise.

A droplet moves through three states - anxious, transition, calm - while a
short reflection for each state is generated with Gemini. Without an API key
(API_KEY or GEMINI_API_KEY) a fixed phrase is shown instead.

Run without arguments to start the exercise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		// The interactive UI owns the terminal and opens its own log file.
		if !cmd.HasParent() {
			return nil
		}

		logCfg := config.LoggingConfig{
			Level:     cliLogLevel(cfg.Logging.Level, verbose),
			Format:    cfg.Logging.Format,
			File:      logging.Stderr,
			DebugMode: true,
		}
		cliLogs, err = logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cliLogs != nil {
			_ = cliLogs.Sync()
		}
	},
	RunE: runExercise,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set API_KEY / GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Gemini model (default from config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")

	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		c.Reflection.APIKey = apiKey
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// cliLogLevel picks the stderr log level for subcommands: the configured
// level, never chattier than warn unless --verbose asks for debug.
func cliLogLevel(configured string, verbose bool) string {
	if verbose {
		return zapcore.DebugLevel.String()
	}
	level, err := zapcore.ParseLevel(configured)
	if err != nil || level < zapcore.WarnLevel {
		return zapcore.WarnLevel.String()
	}
	return level.String()
}

// settingsFrom maps config onto fetcher settings. The --model flag wins over
// the file so hot reloads keep it.
func settingsFrom(c *config.Config) reflection.Settings {
	s := reflection.Settings{
		Model:       c.Reflection.Model,
		Temperature: c.Reflection.Temperature,
		TopP:        c.Reflection.TopP,
		Timeout:     c.Reflection.GetTimeout(),
	}
	if model != "" {
		s.Model = model
	}
	return s
}
