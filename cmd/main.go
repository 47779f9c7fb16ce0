package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ngld/scb/pkg/scb"
)

// entryArgs accepts exactly one entry file before an optional "--" followed by program arguments.
func entryArgs(cmd *cobra.Command, args []string) error {
	count := len(args)
	if dash := cmd.ArgsLenAtDash(); dash > -1 {
		count = dash
	}

	if count != 1 {
		return eris.Errorf("expected the entry file as the only argument but got %d arguments", count)
	}
	return nil
}

func programArgs(cmd *cobra.Command, args []string) []string {
	if dash := cmd.ArgsLenAtDash(); dash > -1 {
		return args[dash:]
	}
	return nil
}

func getProgressBar(length int, visible bool) *progressbar.ProgressBar {
	if !visible || os.Getenv("CI") == "true" {
		return progressbar.NewOptions(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.NewOptions(length,
		progressbar.OptionSetDescription("compiling"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}

var rootCmd = &cobra.Command{
	Use:   "scb <entry file> [-- program arguments]",
	Short: "Builds C projects configured through source comments",
	Long: `Reads the // SCB: directives from the entry file and every source it lists, compiles the sources
that changed since the last build and links them into the declared output.`,
	Args: entryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry")
		if err != nil {
			return err
		}

		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}

		run, err := cmd.Flags().GetBool("run")
		if err != nil {
			return err
		}

		s, err := setup(cmd)
		if err != nil {
			return err
		}

		builder := s.builder
		builder.DryRun = dryRun
		builder.Force = force

		cfg, err := builder.Resolve(s.ctx, args[0])
		if err != nil {
			s.logger.Fatal().Err(err).Msg("Failed to read the build configuration")
		}
		cfg.DryRun = dryRun

		bar := getProgressBar(len(cfg.FileConfigs), s.settings.Progress)
		builder.OnFile = func(scb.FileResult) {
			_ = bar.Add(1)
		}

		report, err := builder.BuildConfig(s.ctx, cfg)
		if err != nil {
			s.logger.Fatal().Err(err).Msg("Build aborted")
		}

		for _, failure := range report.Failures() {
			s.logger.Warn().Str("file", failure.Source).Msgf("was not compiled (%s)", failure.Outcome)
		}

		if !report.Linked() {
			if report.LinkErr != nil {
				return eris.Wrap(report.LinkErr, "linking failed")
			}
			return eris.Errorf("linking failed with status %d", report.LinkStatus)
		}

		if run {
			status, err := builder.Run(s.ctx, cfg, programArgs(cmd, args))
			if err != nil {
				return err
			}

			if status != 0 {
				os.Exit(status)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.Flags().BoolP("dry", "n", false, "dry run; only print the commands, don't execute anything")
	rootCmd.Flags().BoolP("force", "f", false, "force build; compile every source even if it's up-to-date")
	rootCmd.Flags().BoolP("run", "r", false, "run the output after linking it")
	rootCmd.Flags().Bool("progress", false, "show a progress bar while compiling")

	rootCmd.PersistentFlags().String("build-dir", scb.DefaultBuildDir, "directory for object files")
	rootCmd.PersistentFlags().String("log-level", "info", "one of trace, debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("json", false, "log JSON lines instead of colored messages")
}

// Execute runs the CLI and exits with a non-zero status on errors.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
