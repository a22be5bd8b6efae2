package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/edit"
	"splice/internal/timeline"
)

// saveOrRevert persists the mutation, or pops it back off the undo stack for
// dry runs so the project file is left untouched.
func saveOrRevert(cmd *cobra.Command, editor *edit.Editor, path string, dryRun bool) error {
	if dryRun {
		editor.History().Undo()
		fmt.Fprintln(cmd.OutOrStdout(), "Dry run: change reverted; project not saved")
		return nil
	}
	return timeline.SaveProjectFile(path, editor.Model().Project())
}

func newClipCommand(ctx *commandContext) *cobra.Command {
	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Clip operations",
	}
	clipCmd.AddCommand(newClipAddCommand(ctx))
	clipCmd.AddCommand(newClipMoveCommand(ctx))
	clipCmd.AddCommand(newClipSplitCommand(ctx))
	clipCmd.AddCommand(newClipTrimCommand(ctx))
	clipCmd.AddCommand(newClipRemoveCommand(ctx))
	return clipCmd
}

func newClipAddCommand(ctx *commandContext) *cobra.Command {
	var assetID string
	var start int64
	var duration int64

	cmd := &cobra.Command{
		Use:   "add <track>",
		Short: "Place a clip on a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProjectLock(func(model *timeline.Model, path string) error {
				editor, err := ctx.newEditor(model)
				if err != nil {
					return err
				}
				track, ok := resolveTrack(model, args[0])
				if !ok {
					return fmt.Errorf("no track matches %q", args[0])
				}

				assetDuration := duration
				if assetDuration <= 0 && assetID != "" {
					provider, err := ctx.provider()
					if err != nil {
						return err
					}
					if info, err := provider.Lookup(assetID); err == nil {
						assetDuration = info.Duration
					}
				}

				clip, ok := editor.PlaceClip(track.ID, assetID, assetDuration, start)
				if !ok {
					return fmt.Errorf("clip rejected (is track %q locked?)", track.Name)
				}
				if err := timeline.SaveProjectFile(path, model.Project()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added clip %s [%s - %s] on %q\n",
					shortID(clip.ID), formatMs(clip.Start), formatMs(clip.End()), track.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&assetID, "asset", "a", "", "Asset id to back the clip")
	cmd.Flags().Int64Var(&start, "start", 0, "Timeline start in milliseconds")
	cmd.Flags().Int64Var(&duration, "duration", 0, "Clip duration in milliseconds (defaults to the asset's)")
	return cmd
}

func newClipMoveCommand(ctx *commandContext) *cobra.Command {
	var trackKey string
	var start int64
	var noSnap bool
	var playhead int64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "move <clip>",
		Short: "Move a clip, snapping to nearby boundaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProjectLock(func(model *timeline.Model, path string) error {
				editor, err := ctx.newEditor(model)
				if err != nil {
					return err
				}
				clip, ok := resolveClip(model, args[0])
				if !ok {
					return fmt.Errorf("no clip matches %q", args[0])
				}
				_, home, _ := model.FindClip(clip.ID)
				target := home
				if trackKey != "" {
					target, ok = resolveTrack(model, trackKey)
					if !ok {
						return fmt.Errorf("no track matches %q", trackKey)
					}
				}

				if !editor.DragMove(clip.ID, target.ID, start, edit.GestureOptions{
					SnapDisabled: noSnap,
					Playhead:     playhead,
				}) {
					return fmt.Errorf("move rejected (kind mismatch or locked track)")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved clip %s to %s on %q\n",
					shortID(clip.ID), formatMs(clip.Start), target.Name)
				return saveOrRevert(cmd, editor, path, dryRun)
			})
		},
	}

	cmd.Flags().StringVarP(&trackKey, "track", "t", "", "Destination track (defaults to the clip's track)")
	cmd.Flags().Int64Var(&start, "start", 0, "Requested start in milliseconds before snapping")
	cmd.Flags().BoolVar(&noSnap, "no-snap", false, "Disable boundary snapping (grid rounding still applies)")
	cmd.Flags().Int64Var(&playhead, "playhead", 0, "Playhead position offered as a snap candidate")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply, report, then undo without saving")
	return cmd
}

func newClipSplitCommand(ctx *commandContext) *cobra.Command {
	var at int64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "split <track>",
		Short: "Split the clip under a timeline position into two",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProjectLock(func(model *timeline.Model, path string) error {
				editor, err := ctx.newEditor(model)
				if err != nil {
					return err
				}
				track, ok := resolveTrack(model, args[0])
				if !ok {
					return fmt.Errorf("no track matches %q", args[0])
				}
				first, second, ok := editor.CutAt(track.ID, at, edit.GestureOptions{})
				if !ok {
					return fmt.Errorf("no clip spans %s on %q", formatMs(at), track.Name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Split into %s [%s - %s] and %s [%s - %s]\n",
					shortID(first.ID), formatMs(first.Start), formatMs(first.End()),
					shortID(second.ID), formatMs(second.Start), formatMs(second.End()))
				return saveOrRevert(cmd, editor, path, dryRun)
			})
		},
	}

	cmd.Flags().Int64Var(&at, "at", 0, "Timeline position in milliseconds")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply, report, then undo without saving")
	return cmd
}

func newClipTrimCommand(ctx *commandContext) *cobra.Command {
	var side string
	var to int64
	var noSnap bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "trim <clip>",
		Short: "Trim a clip edge to a timeline position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clipSide, ok := timeline.ParseClipSide(side)
			if !ok {
				return fmt.Errorf("side must be %q or %q", timeline.SideStart, timeline.SideEnd)
			}
			return ctx.withProjectLock(func(model *timeline.Model, path string) error {
				editor, err := ctx.newEditor(model)
				if err != nil {
					return err
				}
				clip, ok := resolveClip(model, args[0])
				if !ok {
					return fmt.Errorf("no clip matches %q", args[0])
				}
				// Millisecond-for-pixel density keeps CLI input in ms.
				if !editor.TrimTo(clip.ID, clipSide, float64(to), 1000, edit.GestureOptions{SnapDisabled: noSnap}) {
					return fmt.Errorf("trim rejected (minimum duration or source bounds)")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Clip %s now spans [%s - %s]\n",
					shortID(clip.ID), formatMs(clip.Start), formatMs(clip.End()))
				return saveOrRevert(cmd, editor, path, dryRun)
			})
		},
	}

	cmd.Flags().StringVar(&side, "side", "end", "Which edge to trim (start or end)")
	cmd.Flags().Int64Var(&to, "to", 0, "Target boundary in milliseconds")
	cmd.Flags().BoolVar(&noSnap, "no-snap", false, "Disable boundary snapping")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply, report, then undo without saving")
	return cmd
}

func newClipRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <clip>",
		Short: "Delete a clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProjectLock(func(model *timeline.Model, path string) error {
				editor, err := ctx.newEditor(model)
				if err != nil {
					return err
				}
				clip, ok := resolveClip(model, args[0])
				if !ok {
					return fmt.Errorf("no clip matches %q", args[0])
				}
				if !editor.DeleteClip(clip.ID) {
					return fmt.Errorf("clip %s could not be removed", shortID(clip.ID))
				}
				if err := timeline.SaveProjectFile(path, model.Project()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed clip %s\n", shortID(clip.ID))
				return nil
			})
		},
	}
}
