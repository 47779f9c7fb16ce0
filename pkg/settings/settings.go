// Package settings loads the tool-level options (as opposed to the project configuration that lives in
// the source files).
package settings

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// FileName is the optional settings file looked up in the working directory.
const FileName = "scb.toml"

// Settings describes all configuration options
type Settings struct {
	BuildDir     string `default:"build" toml:"build_dir" env:"BUILD_DIR" usage:"Directory for object files"`
	ObjectSuffix string `default:".o" toml:"object_suffix" env:"OBJECT_SUFFIX" usage:"Suffix appended to object file names"`
	Progress     bool   `default:"false" toml:"progress" env:"PROGRESS" usage:"Show a progress bar while compiling"`
	Log          struct {
		Level string `default:"info" toml:"level" env:"LEVEL"`
		JSON  bool   `default:"false" toml:"json" env:"JSON" usage:"Output JSONND instead of pretty console messages"`
	} `toml:"log" env:"LOG"`
}

var logLevels = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
}

// Loader initializes an empty settings object and returns a new Loader for this object. files lists the
// settings files to read; missing files are skipped.
func Loader(files ...string) (*Settings, *aconfig.Loader) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}

	s := Settings{}
	return &s, aconfig.LoaderFor(&s, aconfig.Config{
		SkipFlags:          true,
		EnvPrefix:          "SCB",
		AllowUnknownEnvs:   true,
		AllowUnknownFields: true,
		Files:              existing,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load reads the defaults, scb.toml and the SCB_* environment variables and validates the result.
func Load() (*Settings, error) {
	s, loader := Loader(FileName)
	if err := loader.Load(); err != nil {
		return nil, eris.Wrap(err, "failed to load settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate verifies that all fields have valid values
func (s *Settings) Validate() error {
	if s.BuildDir == "" {
		return eris.New("build_dir must not be empty")
	}

	if s.ObjectSuffix == "" {
		return eris.New("object_suffix must not be empty")
	}

	if _, ok := logLevels[s.Log.Level]; !ok {
		return eris.Errorf(`Invalid value for log.level: %s`, s.Log.Level)
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level
func (s *Settings) LogLevel() zerolog.Level {
	return logLevels[s.Log.Level]
}
