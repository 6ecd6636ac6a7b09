package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mindflerm/internal/config"
	"mindflerm/internal/log"
)

var version = "0.1.0"

var (
	errColor  = color.New(color.FgRed)
	goodColor = color.New(color.FgGreen)
)

const debugLogFile = "debug.log"

type rootOptions struct {
	configPath string
	logFile    string
	debug      bool
	rootText   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "mindflerm: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "mindflerm",
		Short:         "A mind map editor for the terminal",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(opts)
		},
	}
	cmd.SetVersionTemplate("mindflerm {{ .Version }}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.Path()+")")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write a debug log to this file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level (to "+debugLogFile+" unless --log-file is set)")
	cmd.Flags().StringVar(&opts.rootText, "root-text", "", "label of the root node")

	cmd.AddCommand(configCmd(opts))
	return cmd
}

func configCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the mindflerm config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath(opts.configPath)
			if err := config.Init(path, force); err != nil {
				return err
			}
			goodColor.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), resolveConfigPath(opts.configPath))
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func resolveConfigPath(path string) string {
	if path == "" {
		return config.Path()
	}
	return path
}

// loadConfig reads the config and applies command line overrides.
func loadConfig(opts *rootOptions) (*config.Config, string, error) {
	path := resolveConfigPath(opts.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	opts.apply(cfg)
	return cfg, path, nil
}

// apply layers the command line flags over a loaded config. It runs again
// on every reload so the flags keep winning over the file.
func (o *rootOptions) apply(cfg *config.Config) {
	if o.rootText != "" {
		cfg.UI.RootText = o.rootText
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = debugLogFile
		}
	}
}

// openLogger opens the log file through Bubble Tea, which owns stdout while
// the editor runs. The returned func closes it.
func openLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.Log.File == "" {
		return log.Discard(), func() {}, nil
	}
	f, err := tea.LogToFile(cfg.Log.File, "mindflerm")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, log.ParseLevel(cfg.Log.Level)), func() { f.Close() }, nil
}

func runEditor(opts *rootOptions) error {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Infof("starting mindflerm %s with config %s", version, path)
	m := newModel(cfg, path, logger)
	m.flags = opts
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Errorf("editor: %v", err)
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
