package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"splice/internal/mixer"
)

func newMixCommand(ctx *commandContext) *cobra.Command {
	var out string
	var sampleRate int
	var channels int
	var duration int64

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Render the timeline's audio to a raw float32 file",
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

			samples, err := mixer.Mixdown(model.Tracks(), provider, mixer.MixdownOptions{
				SampleRate: sampleRate,
				Channels:   channels,
				DurationMs: duration,
			}, ctx.ensureLogger())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output %q: %w", out, err)
			}
			defer f.Close()
			w := bufio.NewWriter(f)
			buf := make([]byte, 4)
			for _, sample := range samples {
				binary.LittleEndian.PutUint32(buf, math.Float32bits(sample))
				if _, err := w.Write(buf); err != nil {
					return fmt.Errorf("write samples: %w", err)
				}
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flush samples: %w", err)
			}

			frames := 0
			if channels > 0 {
				frames = len(samples) / channels
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames (%s) to %s\n",
				frames, formatMs(int64(frames)*1000/int64(sampleRate)), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path for interleaved little-endian float32 samples")
	cmd.Flags().IntVar(&sampleRate, "rate", 48000, "Output sample rate")
	cmd.Flags().IntVar(&channels, "channels", 2, "Output channel count")
	cmd.Flags().Int64Var(&duration, "duration", 0, "Mix length in milliseconds (defaults to the last clip end)")
	return cmd
}
