package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/timeline"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Track operations",
	}
	trackCmd.AddCommand(newTrackAddCommand(ctx))
	trackCmd.AddCommand(newTrackRemoveCommand(ctx))
	return trackCmd
}

func newTrackAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <kind>",
		Short: "Append a track of the given kind (video, audio, text, image)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := timeline.ParseTrackKind(args[0])
			if !ok {
				return fmt.Errorf("unknown track kind %q", args[0])
			}
			return ctx.withProjectLock(func(model *timeline.Model, path string) error {
				editor, err := ctx.newEditor(model)
				if err != nil {
					return err
				}
				track := editor.AddTrack(kind)
				if err := timeline.SaveProjectFile(path, model.Project()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s track %q (order %d)\n", kind, track.Name, track.Order)
				return nil
			})
		},
	}
}

func newTrackRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <track-id>",
		Short: "Remove a track and all of its clips",
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
				if !editor.DeleteTrack(track.ID) {
					return fmt.Errorf("track %s could not be removed", track.ID)
				}
				if err := timeline.SaveProjectFile(path, model.Project()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed track %q\n", track.Name)
				return nil
			})
		},
	}
}

// resolveTrack matches a track by full id, id prefix, or exact name.
func resolveTrack(model *timeline.Model, key string) (*timeline.Track, bool) {
	for _, track := range model.Tracks() {
		if track.ID == key || track.Name == key {
			return track, true
		}
	}
	var match *timeline.Track
	for _, track := range model.Tracks() {
		if len(key) >= 4 && len(track.ID) >= len(key) && track.ID[:len(key)] == key {
			if match != nil {
				return nil, false
			}
			match = track
		}
	}
	return match, match != nil
}

// resolveClip matches a clip by full id or id prefix.
func resolveClip(model *timeline.Model, key string) (*timeline.Clip, bool) {
	if clip, _, ok := model.FindClip(key); ok {
		return clip, true
	}
	var match *timeline.Clip
	for _, track := range model.Tracks() {
		for _, clip := range track.Clips {
			if len(key) >= 4 && len(clip.ID) >= len(key) && clip.ID[:len(key)] == key {
				if match != nil {
					return nil, false
				}
				match = clip
			}
		}
	}
	return match, match != nil
}
