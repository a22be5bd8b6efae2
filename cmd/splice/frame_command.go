package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"splice/internal/compositor"
	"splice/internal/render"
)

func newFrameCommand(ctx *commandContext) *cobra.Command {
	var at int64
	var out string

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Render the frame at a timeline position to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("no output path given; pass --out")
			}
			model, _, err := ctx.loadModel()
			if err != nil {
				return err
			}
			provider, err := ctx.provider()
			if err != nil {
				return err
			}

			resolution := model.Project().Resolution
			surface := render.NewSoftwareSurface(resolution.Width, resolution.Height)
			compositor.New(provider, ctx.ensureLogger()).RenderFrame(surface, model.Tracks(), at)

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output %q: %w", out, err)
			}
			defer f.Close()
			if err := png.Encode(f, surface.Frame()); err != nil {
				return fmt.Errorf("encode frame: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered frame at %s to %s\n", formatMs(at), out)
			return nil
		},
	}

	cmd.Flags().Int64Var(&at, "at", 0, "Timeline position in milliseconds")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PNG path")
	return cmd
}
