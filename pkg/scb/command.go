package scb

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

const (
	compileOnlyFlag = "-c"
	outputFlag      = "-o"
)

var (
	// ErrNoCompiler is returned for files without a file or global compiler.
	ErrNoCompiler = eris.New("no compiler specified")
	// ErrNoOutput is returned when linking without an output directive.
	ErrNoOutput = eris.New("no output specified")
)

// Command is a single toolchain invocation. Arguments are never joined into a string for execution,
// String() only exists for logging.
type Command struct {
	Args []string
}

// String returns the command with shell quoting applied where necessary.
func (c Command) String() string {
	call, err := c.callExpr()
	if err != nil {
		return strings.Join(c.Args, " ")
	}

	buffer := strings.Builder{}
	printer := syntax.NewPrinter(syntax.Minify(true))
	if err := printer.Print(&buffer, call); err != nil {
		return strings.Join(c.Args, " ")
	}

	return buffer.String()
}

func (c Command) callExpr() (*syntax.CallExpr, error) {
	if len(c.Args) == 0 {
		return nil, eris.New("empty command")
	}

	call := new(syntax.CallExpr)
	call.Args = make([]*syntax.Word, len(c.Args))
	for a, arg := range c.Args {
		call.Args[a] = &syntax.Word{Parts: []syntax.WordPart{wordPart(arg)}}
	}

	return call, nil
}

func isPlainArg(arg string) bool {
	if arg == "" {
		return false
	}

	for _, r := range arg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./=+,:@%^", r):
		default:
			return false
		}
	}
	return true
}

var dblQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// wordPart wraps arg so that neither the printer nor the interpreter changes its meaning.
func wordPart(arg string) syntax.WordPart {
	if isPlainArg(arg) {
		return &syntax.Lit{Value: arg}
	}

	if !strings.Contains(arg, "'") {
		return &syntax.SglQuoted{Value: arg}
	}

	return &syntax.DblQuoted{Parts: []syntax.WordPart{
		&syntax.Lit{Value: dblQuoteEscaper.Replace(arg)},
	}}
}

// splitFlags breaks a flag string into words following shell rules. Quotes are honored and $VARS are
// taken from the environment.
func splitFlags(flags string) ([]string, error) {
	if strings.TrimSpace(flags) == "" {
		return nil, nil
	}

	words, err := shell.Fields(flags, os.Getenv)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to split %q", flags)
	}

	return words, nil
}

// CompileCommand builds the command that compiles file into object.
func CompileCommand(cfg *GlobalConfig, file *FileConfig, object string) (Command, error) {
	compiler, err := splitFlags(cfg.Compiler(file))
	if err != nil {
		return Command{}, err
	}
	if len(compiler) == 0 {
		return Command{}, eris.Wrapf(ErrNoCompiler, "for %s", file.Filepath)
	}

	globalFlags, err := splitFlags(cfg.CFlags)
	if err != nil {
		return Command{}, eris.Wrap(err, "invalid global-cflags")
	}

	fileFlags, err := splitFlags(file.CFlags)
	if err != nil {
		return Command{}, eris.Wrapf(err, "invalid cflags in %s", file.Filepath)
	}

	args := make([]string, 0, len(compiler)+len(globalFlags)+len(fileFlags)+4)
	args = append(args, compiler...)
	args = append(args, globalFlags...)
	args = append(args, fileFlags...)
	args = append(args, compileOnlyFlag, file.Filepath, outputFlag, object)

	return Command{Args: args}, nil
}

// LinkCommand builds the command that links objects into the configured output. The global ldflags
// come first, followed by each file's ldflags in source order.
func LinkCommand(cfg *GlobalConfig, objects []string) (Command, error) {
	if cfg.Output == "" {
		return Command{}, ErrNoOutput
	}

	linker, err := splitFlags(cfg.LD)
	if err != nil {
		return Command{}, err
	}
	if len(linker) == 0 {
		return Command{}, eris.New("no linker specified")
	}

	args := make([]string, 0, len(linker)+len(objects)+2)
	args = append(args, linker...)
	args = append(args, objects...)
	args = append(args, outputFlag, cfg.Output)

	globalFlags, err := splitFlags(cfg.LDFlags)
	if err != nil {
		return Command{}, eris.Wrap(err, "invalid global-ldflags")
	}
	args = append(args, globalFlags...)

	for _, file := range cfg.FileConfigs {
		if file == nil {
			continue
		}

		flags, err := splitFlags(file.LDFlags)
		if err != nil {
			return Command{}, eris.Wrapf(err, "invalid ldflags in %s", file.Filepath)
		}
		args = append(args, flags...)
	}

	return Command{Args: args}, nil
}
