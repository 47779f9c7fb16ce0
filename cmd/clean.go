package cmd

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <entry file>",
	Short: "Removes the object files and the output of the project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry")
		if err != nil {
			return err
		}

		s, err := setup(cmd)
		if err != nil {
			return err
		}

		cfg, err := s.builder.Resolve(s.ctx, args[0])
		if err != nil {
			s.logger.Fatal().Err(err).Msg("Failed to read the build configuration")
		}

		s.builder.DryRun = dryRun
		return s.builder.Clean(s.ctx, cfg)
	},
}

func init() {
	cleanCmd.Flags().BoolP("dry", "n", false, "only print what would be deleted")
	rootCmd.AddCommand(cleanCmd)
}
