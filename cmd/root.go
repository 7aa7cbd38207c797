package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/wp-cli/internal/adapters/repository"
	"github.com/kamal-hamza/wp-cli/internal/adapters/workbook"
	"github.com/kamal-hamza/wp-cli/internal/core/services"
	"github.com/kamal-hamza/wp-cli/internal/logging"
	"github.com/kamal-hamza/wp-cli/pkg/config"
	"github.com/kamal-hamza/wp-cli/pkg/ui"
	"github.com/kamal-hamza/wp-cli/pkg/workspace"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	appConfig    *config.Config
	appWorkspace *workspace.Workspace

	// Services
	generateService *services.GenerateService
	checkService    *services.CheckService

	// Adapters
	workbookReader *workbook.Reader
	pageRepo       *repository.FileRepository
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wp",
	Short: "WP - Work pages from a catalogue spreadsheet",
	Long: ui.StyleTitle.Render("WP") + " - Work Page Generator\n\n" +
		"Turns the rows of a catalogue spreadsheet into Markdown pages with\n" +
		"front matter for a static site. Runs are dry by default.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(sheetsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/wp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// initializeApp loads configuration and wires the adapters and services
func initializeApp(cmd *cobra.Command, args []string) error {
	// version and config init never need a valid config file
	if cmd.Name() == "version" || cmd.Name() == "init" {
		return nil
	}

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	if logFormat == "" {
		logFormat = cfg.LogFormat
	}
	if !logging.ValidLevel(logLevel) {
		return fmt.Errorf("unknown log level %q", logLevel)
	}
	if !logging.ValidFormat(logFormat) {
		return fmt.Errorf("unknown log format %q", logFormat)
	}
	logging.Setup(logLevel, logFormat)

	ui.SetTheme(cfg.ColorTheme)

	workbookReader = workbook.NewReader()
	return useOutputDir(cfg.OutputDir)
}

// useOutputDir points the page repository and services at dir
func useOutputDir(dir string) error {
	ws, err := workspace.New(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if configPath != "" {
		if ws.ConfigPath, err = resolveConfigPath(); err != nil {
			return err
		}
	}
	appWorkspace = ws

	pageRepo = repository.NewFileRepository(appWorkspace)
	generateService = services.NewGenerateService(workbookReader, pageRepo)
	checkService = services.NewCheckService(pageRepo)

	return nil
}

// resolveConfigPath returns --config or the default location
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return workspace.ExpandHome(configPath)
	}
	return workspace.DefaultConfigPath()
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
