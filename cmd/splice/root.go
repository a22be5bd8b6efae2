package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var projectFlag string
	var mediaFlag string

	ctx := newCommandContext(&configFlag, &projectFlag, &mediaFlag)

	rootCmd := &cobra.Command{
		Use:           "splice",
		Short:         "Splice timeline editor CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project file path")
	rootCmd.PersistentFlags().StringVarP(&mediaFlag, "media", "m", "", "Media directory for asset resolution")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newNewCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newTrackCommand(ctx))
	rootCmd.AddCommand(newClipCommand(ctx))
	rootCmd.AddCommand(newFrameCommand(ctx))
	rootCmd.AddCommand(newMixCommand(ctx))
	rootCmd.AddCommand(newPlayCommand(ctx))

	return rootCmd
}
