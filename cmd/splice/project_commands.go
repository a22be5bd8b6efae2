package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/timeline"
)

func newNewCommand(ctx *commandContext) *cobra.Command {
	var name string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new project file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.projectPath()
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("project already exists at %s (use --overwrite to replace it)", path)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check project path: %w", err)
				}
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			project := timeline.NewProject(name, timeline.Resolution{
				Width:  cfg.Project.Width,
				Height: cfg.Project.Height,
			}, cfg.Project.FrameRate)

			if err := timeline.SaveProjectFile(path, project); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q at %s\n", project.Name, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "Untitled", "Project name")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing project file")
	return cmd
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the project's tracks and clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, path, err := ctx.loadModel()
			if err != nil {
				return err
			}
			project := model.Project()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Project: %s (%s)\n", project.Name, project.ID)
			fmt.Fprintf(out, "File: %s\n", path)
			fmt.Fprintf(out, "Resolution: %dx%d @ %d fps\n",
				project.Resolution.Width, project.Resolution.Height, project.FrameRate)
			fmt.Fprintf(out, "Duration: %s\n\n", formatMs(model.ProjectDuration()))

			trackRows := make([][]string, 0, len(model.Tracks()))
			for _, track := range model.Tracks() {
				trackRows = append(trackRows, []string{
					strconv.Itoa(track.Order),
					track.Name,
					string(track.Kind),
					yesNo(track.Visible),
					yesNo(track.Muted),
					yesNo(track.Locked),
					strconv.Itoa(len(track.Clips)),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Order", "Name", "Kind", "Visible", "Muted", "Locked", "Clips"},
				trackRows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))

			var clipRows [][]string
			for _, track := range model.Tracks() {
				for _, clip := range track.Clips {
					clipRows = append(clipRows, []string{
						shortID(clip.ID),
						track.Name,
						clip.Name,
						clip.AssetID,
						formatMs(clip.Start),
						formatMs(clip.End()),
						strconv.Itoa(len(clip.Effects)),
						strconv.Itoa(len(clip.Keyframes)),
					})
				}
			}
			if len(clipRows) > 0 {
				fmt.Fprintln(out, renderTable(out,
					[]string{"Clip", "Track", "Name", "Asset", "Start", "End", "Effects", "Keyframes"},
					clipRows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
			}
			return nil
		},
	}
}
