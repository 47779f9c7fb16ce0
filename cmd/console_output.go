package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func debugEnabled() bool {
	return os.Getenv("SCB_DEBUG") != ""
}

// ConsoleWriter renders zerolog's JSON events as short, colored lines.
type ConsoleWriter struct {
	out    io.Writer
	color  bool
	buffer strings.Builder
	lock   sync.Mutex
}

// NewConsoleWriter returns a writer printing to out. Color codes are stripped unless color is set.
func NewConsoleWriter(out io.Writer, color bool) *ConsoleWriter {
	return &ConsoleWriter{out: out, color: color}
}

func (w *ConsoleWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var evt map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	err = d.Decode(&evt)
	if err != nil {
		return n, eris.Wrapf(err, "cannot decode event: %s", p)
	}

	w.buffer.Reset()
	switch evt["level"] {
	case "fatal", "error":
		w.buffer.WriteString("[red]")
	case "warn":
		w.buffer.WriteString("[yellow]")
	case "debug", "trace":
		w.buffer.WriteString("[blue]")
	default:
		if evt["command"] == true {
			w.buffer.WriteString("[bold]")
		}
		w.buffer.WriteString("[green]")
	}

	colorizer := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !w.color,
	}
	// only the color codes go through colorstring, paths and messages may contain brackets
	prefix := colorizer.Color(w.buffer.String())

	w.buffer.Reset()
	w.buffer.WriteString(prefix)
	w.buffer.WriteString("[SCB] ")
	if file, ok := evt["file"].(string); ok {
		// simplify the path
		if relPath, err := filepath.Rel(".", file); err == nil {
			file = relPath
		}
		w.buffer.WriteString(file + ": ")
	}

	if evt["command"] == true {
		switch evt["step"] {
		case "compile":
			w.buffer.WriteString("Compiling: ")
		case "link":
			w.buffer.WriteString("Linking: ")
		case "run":
			w.buffer.WriteString("Running: ")
		}
	} else if evt["level"] == "error" || evt["level"] == "fatal" {
		w.buffer.WriteString("Error: ")
	}

	msg, _ := evt["message"].(string)
	w.buffer.WriteString(msg)

	if errorDetails, ok := evt["error"].(string); ok {
		w.buffer.WriteString("\n")
		w.buffer.WriteString(errorDetails)
	}

	if debugEnabled() {
		names := make([]string, 0, len(evt))
		for name := range evt {
			names = append(names, name)
		}
		sort.Strings(names)

		w.buffer.WriteString("\n")
		for _, name := range names {
			w.buffer.WriteString(fmt.Sprintf("  %s: %+v\n", name, evt[name]))
		}
	}

	w.buffer.WriteString(colorizer.Color("[reset]"))
	w.buffer.WriteString("\n")
	_, err = io.WriteString(w.out, w.buffer.String())
	if err != nil {
		return 0, err
	}

	// zerolog expects the full event to be consumed
	return len(p), nil
}

func init() {
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return eris.ToString(err, debugEnabled())
	}
}
