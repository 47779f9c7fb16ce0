package cmd

import (
	"encoding/json"
	"io/ioutil"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var compileCommandsCmd = &cobra.Command{
	Use:   "compile-commands <entry file>",
	Short: "Writes a compile_commands.json for the project",
	Long: `Resolves the build configuration and writes the compile command of every source into a
clang compilation database so that editors and clangd see the same flags as the build.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
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

		entries, err := s.builder.CompileDatabase(s.ctx, cfg)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return eris.Wrap(err, "failed to encode output")
		}

		err = ioutil.WriteFile(output, data, 0660)
		if err != nil {
			return eris.Wrapf(err, "failed to write to %s", output)
		}

		s.logger.Info().Msgf("wrote %d entries to %s", len(entries), output)
		return nil
	},
}

func init() {
	compileCommandsCmd.Flags().StringP("output", "o", "compile_commands.json", "file to write")
	rootCmd.AddCommand(compileCommandsCmd)
}
