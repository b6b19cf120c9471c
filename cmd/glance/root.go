package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"glance/internal/app"
	"glance/internal/config"
	"glance/internal/errors"
	"glance/internal/gui"
	"glance/internal/log"
	"glance/internal/source"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	cfgFile     string
	pipes       []string
	ignore      []string
	idle        int
	ui          string
	noHighlight bool
	debug       bool
	logFile     string
	theme       string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "glance [path]",
		Short: "Preview files as their paths arrive",
		Long: `Glance previews the most recently requested path: directories as
listings, text as its first lines, images as pictures and anything else as
a short summary.

Paths come from an optional argument and from any number of sources, one
path per line:

  -            standard input
  watch:DIR    files created or written in DIR
  PATH         a named stream such as a FIFO

Glance exits once every source has closed.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.cfgFile)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}

			closeLog := setupLogging(cfg)
			defer closeLog()

			specs, err := source.ParseSpecs(append(opts.pipes, cfg.Sources.Pipes...))
			if err != nil {
				return err
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			log.Info("Starting glance %s: renderer=%s sources=%d", version, cfg.Preview.Renderer, len(specs))
			if len(args) > 0 {
				a.WithPreview(args[0])
			}
			if err := a.WithSources(specs); err != nil {
				log.LogError(err, "Cannot start source")
				a.Close()
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := a.Run(ctx); err != nil {
				log.LogError(err, "Preview host failed")
				return err
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&opts.pipes, "pipe", "p", nil, "path source: '-' for stdin, 'watch:DIR' or a FIFO path (repeatable)")
	flags.StringSliceVar(&opts.ignore, "ignore", nil, "glob patterns of paths to ignore")
	flags.IntVar(&opts.idle, "idle", 0, "max milliseconds to sleep between ticks when idle (default from config, 50)")
	flags.StringVar(&opts.ui, "ui", "", "renderer: tui, gui or plain (default from config, tui)")
	flags.BoolVar(&opts.noHighlight, "no-highlight", false, "disable syntax highlighting")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	flags.StringVar(&opts.theme, "theme", "", "colour theme: "+strings.Join(config.ListThemes(), ", "))

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/glance/config.yaml)")

	rootCmd.AddCommand(NewResolveCmd(&opts.cfgFile))
	rootCmd.AddCommand(NewConfigCmd(&opts.cfgFile))

	return rootCmd
}

// apply lays command-line flags over the loaded configuration
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("ui") {
		cfg.Preview.Renderer = o.ui
	}
	if flags.Changed("idle") {
		cfg.Preview.IdleIntervalMS = o.idle
	}
	if o.noHighlight {
		cfg.Preview.Highlight = false
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.theme != "" {
		cfg.ApplyTheme(o.theme)
	}
	cfg.Sources.Ignore = append(cfg.Sources.Ignore, o.ignore...)
	if err := cfg.Validate(); err != nil {
		return err
	}
	return checkRenderer(cfg.Preview.Renderer, gui.IsGUIAvailable())
}

// checkRenderer rejects the GUI renderer in builds without it
func checkRenderer(renderer string, guiAvailable bool) error {
	if renderer == config.RendererGUI && !guiAvailable {
		return errors.NewConfigError("GUI not available in this build", "preview.renderer", errors.InvalidConfig, nil)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	return config.LoadConfig()
}

// setupLogging points the package logger at the configured sinks. The
// TUI owns the terminal, so without a log file its logs are discarded.
func setupLogging(cfg *config.Config) func() {
	log.Configure(logOptions(cfg, os.Stderr)...)
	log.SetDebug(cfg.Log.Debug)

	return func() {
		if err := log.Default().Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
		}
	}
}

func logOptions(cfg *config.Config, stderr io.Writer) []log.Option {
	var opts []log.Option
	if cfg.Preview.Renderer == config.RendererTUI {
		opts = append(opts, log.WithOutput(io.Discard))
	} else {
		opts = append(opts, log.WithOutput(stderr))
	}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFile(cfg.Log.File))
	}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	return opts
}
