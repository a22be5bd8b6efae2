package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"splice/internal/engine"
	"splice/internal/mixer"
	"splice/internal/playback"
	"splice/internal/render"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var from int64
	var rate float64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the timeline headless in real time",
		Long: "Play drives the playback engine from the given position until the end of " +
			"the timeline, rendering frames to an offscreen surface and scheduling audio " +
			"against a discard sink. The playback rate and audio resync window come from " +
			"the configuration unless overridden.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			model, _, err := ctx.loadModel()
			if err != nil {
				return err
			}
			if model.ProjectDuration() == 0 {
				return fmt.Errorf("project has no clips to play")
			}
			provider, err := ctx.provider()
			if err != nil {
				return err
			}

			if rate <= 0 {
				rate = cfg.Playback.DefaultRate
			}
			resolution := model.Project().Resolution
			surface := render.NewSoftwareSurface(resolution.Width, resolution.Height)
			e := engine.New(model, provider, mixer.NewNullOutput(), surface, engine.Options{
				Rate:         rate,
				ResyncWindow: cfg.Playback.ResyncWindowMs,
			}, ctx.ensureLogger())

			e.Seek(from)
			e.Play()

			frames := 0
			ticker := time.NewTicker(16 * time.Millisecond)
			defer ticker.Stop()
			for e.State() == playback.StatePlaying {
				select {
				case <-cmd.Context().Done():
					e.Stop()
					return cmd.Context().Err()
				case <-ticker.C:
					e.Tick()
					frames++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Played to %s at %gx (%d frames)\n",
				formatMs(e.LogicalTime()), e.Rate(), frames)
			return nil
		},
	}

	cmd.Flags().Int64Var(&from, "from", 0, "Start position in milliseconds")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Playback rate; 0 uses the configured default")
	return cmd
}
