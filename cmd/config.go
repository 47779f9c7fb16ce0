package cmd

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ngld/scb/pkg/scb"
)

func writeConfig(out io.Writer, cfg *scb.GlobalConfig, format string) error {
	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(cfg); err != nil {
			return eris.Wrap(err, "failed to encode configuration")
		}
		return encoder.Close()
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return eris.Wrap(encoder.Encode(cfg), "failed to encode configuration")
	default:
		return eris.Errorf("unsupported format %s, expected yaml or json", format)
	}
}

var configCmd = &cobra.Command{
	Use:   "config <entry file>",
	Short: "Prints the resolved build configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
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

		return writeConfig(cmd.OutOrStdout(), cfg, format)
	},
}

func init() {
	configCmd.Flags().String("format", "yaml", "output format (yaml or json)")
	rootCmd.AddCommand(configCmd)
}
