package scb

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	DefaultBuildDir     = "build"
	DefaultObjectSuffix = ".o"
)

// Outcome describes what happened to a single source file during a build.
type Outcome int

const (
	// Compiled means the compiler ran and exited with status 0.
	Compiled Outcome = iota
	// UpToDate means the file was skipped because nothing changed.
	UpToDate
	// Failed means the compiler ran (or should have) but didn't succeed.
	Failed
	// Skipped means no compile command could be built for the file.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Compiled:
		return "compiled"
	case UpToDate:
		return "up-to-date"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "invalid"
	}
}

// FileResult records the compile step of one source.
type FileResult struct {
	Source  string
	Object  string
	Outcome Outcome
	Command Command
	Status  int
	Err     error
}

// Report collects the results of a build. Failed compiles don't stop the build, they're only recorded
// here.
type Report struct {
	Config *GlobalConfig
	Files  []FileResult
	// Link is nil if no link command could be built
	Link       *Command
	LinkStatus int
	LinkErr    error
}

// Linked reports whether the link step ran (or would have in a dry run) and succeeded.
func (r *Report) Linked() bool {
	return r.Link != nil && r.LinkErr == nil && r.LinkStatus == 0
}

// Failures returns the results of all files that weren't compiled successfully or skipped as up-to-date.
func (r *Report) Failures() []FileResult {
	result := []FileResult{}
	for _, file := range r.Files {
		if file.Outcome == Failed || file.Outcome == Skipped {
			result = append(result, file)
		}
	}

	return result
}

// Builder drives a complete build from an entry file to a linked executable.
type Builder struct {
	Resolver
	BuildDir     string
	ObjectSuffix string
	DryRun       bool
	// Force compiles every file regardless of timestamps.
	Force    bool
	Executor Executor
	// OnFile is called after each source has been handled.
	OnFile func(FileResult)
}

// NewBuilder returns a builder for the host platform with the default build directory.
func NewBuilder(executor Executor) *Builder {
	return &Builder{
		Resolver:     NewResolver(),
		BuildDir:     DefaultBuildDir,
		ObjectSuffix: DefaultObjectSuffix,
		Executor:     executor,
	}
}

// ObjectPath returns where the object file for source is placed.
func (b *Builder) ObjectPath(source string) string {
	return filepath.Join(b.BuildDir, filepath.Base(source)+b.ObjectSuffix)
}

// ExecutablePath returns the path the linked output is expected at.
func (b *Builder) ExecutablePath(output string) string {
	if output == "" {
		return ""
	}

	candidates := b.Platform.executableCandidates(output)
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return candidates[0]
}

// Build resolves the configuration starting at entry and builds it. An error is only returned if the
// configuration couldn't be read or the build directory couldn't be created; compile and link failures
// are recorded in the report.
func (b *Builder) Build(ctx context.Context, entry string) (*Report, error) {
	cfg, err := b.Resolve(ctx, entry)
	if err != nil {
		return nil, err
	}

	cfg.DryRun = b.DryRun
	return b.BuildConfig(ctx, cfg)
}

// BuildConfig compiles and links an already resolved configuration. Commands are only logged if
// cfg.DryRun is set.
func (b *Builder) BuildConfig(ctx context.Context, cfg *GlobalConfig) (*Report, error) {
	if len(cfg.FileConfigs) != len(cfg.SourcePaths) {
		return nil, eris.Errorf("configuration has %d sources but %d file configs", len(cfg.SourcePaths), len(cfg.FileConfigs))
	}

	if !cfg.DryRun {
		if err := os.MkdirAll(b.BuildDir, 0770); err != nil {
			return nil, eris.Wrapf(err, "failed to create %s", b.BuildDir)
		}
	}

	report := &Report{
		Config: cfg,
		Files:  make([]FileResult, 0, len(cfg.FileConfigs)),
	}
	executable := b.ExecutablePath(cfg.Output)
	objects := make([]string, 0, len(cfg.FileConfigs))

	for _, file := range cfg.FileConfigs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := b.compile(ctx, cfg, file, executable)
		objects = append(objects, result.Object)
		report.Files = append(report.Files, result)

		if b.OnFile != nil {
			b.OnFile(result)
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	// objects of failed or skipped files are still passed to the linker
	link, err := LinkCommand(cfg, objects)
	if err != nil {
		Logger(ctx).Error().Err(err).Msg("skipping link step")
		report.LinkErr = err
		return report, nil
	}

	report.Link = &link
	report.LinkStatus, report.LinkErr = b.execute(ctx, Logger(ctx), "link", link, cfg.DryRun)
	return report, nil
}

func (b *Builder) compile(ctx context.Context, cfg *GlobalConfig, file *FileConfig, executable string) FileResult {
	logger := fileLog(ctx, file.Filepath)
	result := FileResult{
		Source: file.Filepath,
		Object: b.ObjectPath(file.Filepath),
	}

	if !b.Force && !NeedsRebuild(file.Filepath, result.Object, executable) {
		logger.Info().Msg("skipping, up-to-date")
		result.Outcome = UpToDate
		return result
	}

	cmd, err := CompileCommand(cfg, file, result.Object)
	if err != nil {
		logger.Error().Err(err).Msg("can't compile")
		result.Outcome = Skipped
		result.Err = err
		return result
	}

	result.Command = cmd
	result.Status, result.Err = b.execute(ctx, &logger, "compile", cmd, cfg.DryRun)
	if result.Err != nil || result.Status != 0 {
		result.Outcome = Failed
	} else {
		result.Outcome = Compiled
	}

	return result
}

func (b *Builder) execute(ctx context.Context, logger *zerolog.Logger, step string, cmd Command, dryRun bool) (int, error) {
	logger.Info().Str("step", step).Bool("command", true).Msg(cmd.String())
	if dryRun {
		return 0, nil
	}

	status, err := b.Executor.Execute(ctx, cmd)
	if err != nil {
		logger.Error().Err(err).Str("step", step).Msgf("failed to run %s", cmd.Args[0])
		return status, err
	}

	if status != 0 {
		logger.Error().Str("step", step).Int("status", status).Msgf("%s exited with status %d", cmd.Args[0], status)
	}
	return status, nil
}

// Run starts the linked executable with the given arguments and returns its exit status.
func (b *Builder) Run(ctx context.Context, cfg *GlobalConfig, args []string) (int, error) {
	if cfg.Output == "" {
		return -1, ErrNoOutput
	}

	program := cfg.Output
	if !filepath.IsAbs(program) && !strings.ContainsAny(program, `/\`) {
		program = "./" + program
	}

	cmd := Command{Args: append([]string{program}, args...)}
	return b.execute(ctx, Logger(ctx), "run", cmd, b.DryRun || cfg.DryRun)
}
