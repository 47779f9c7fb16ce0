package scb

// FileConfig holds the per-file overrides declared inside a single source file.
// CFlags and LDFlags are appended to the global flags, CC replaces the global compiler.
type FileConfig struct {
	Filepath string `yaml:"filepath" json:"filepath"`
	CC       string `yaml:"cc,omitempty" json:"cc,omitempty"`
	CFlags   string `yaml:"cflags,omitempty" json:"cflags,omitempty"`
	LDFlags  string `yaml:"ldflags,omitempty" json:"ldflags,omitempty"`
}

// GlobalConfig is the project-wide configuration declared by the entry file. A new one is created for
// every build and only written while directives are resolved.
type GlobalConfig struct {
	Output string `yaml:"output" json:"output"`
	// SourcePaths[0] is always the entry file
	SourcePaths []string      `yaml:"sources" json:"sources"`
	FileConfigs []*FileConfig `yaml:"files" json:"files"`
	CC          string        `yaml:"cc" json:"cc"`
	LD          string        `yaml:"ld" json:"ld"`
	CFlags      string        `yaml:"cflags,omitempty" json:"cflags,omitempty"`
	LDFlags     string        `yaml:"ldflags,omitempty" json:"ldflags,omitempty"`
	DryRun      bool          `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
}

// Entry returns the file the configuration was read from.
func (cfg *GlobalConfig) Entry() string {
	if len(cfg.SourcePaths) == 0 {
		return ""
	}

	return cfg.SourcePaths[0]
}

// Compiler returns the compiler for the given file, preferring the file's own cc directive.
func (cfg *GlobalConfig) Compiler(file *FileConfig) string {
	if file != nil && file.CC != "" {
		return file.CC
	}

	return cfg.CC
}
