package main

import (
	"fmt"
	"io"

	"glance/internal/log"
	"glance/internal/preview"
	"glance/internal/render"
	"glance/pkg/types"

	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd(cfgFile *string) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "resolve PATH",
		Short: "Classify and load one path, then print the preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}

			resolver := preview.NewResolver(
				preview.WithExif(cfg.Preview.Exif),
				preview.WithLogger(log.NewLogger(log.WithOutput(io.Discard))),
			)
			size := types.NewSize(width, height)
			p := resolver.Resolve(args[0], size)

			out := cmd.OutOrStdout()
			typ, sub := preview.GuessType(args[0])
			fmt.Fprintf(out, "kind: %s (guessed %s/%s)\n", p.Kind(), typ, sub)
			fmt.Fprint(out, render.Layout(p, size).Text())
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "available width")
	cmd.Flags().IntVar(&height, "height", 24, "available height (line cap for text)")

	return cmd
}
