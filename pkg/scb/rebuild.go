package scb

import (
	"os"
	"time"
)

func modTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}

	return info.ModTime(), true
}

// NeedsRebuild decides whether source has to be compiled again. Everything is compared against the
// linked executable instead of the object file; header dependencies aren't tracked.
// A missing source also returns true so that the compiler can report the actual problem.
func NeedsRebuild(source, object, executable string) bool {
	sourceTime, ok := modTime(source)
	if !ok {
		return true
	}

	objectTime, ok := modTime(object)
	if !ok {
		return true
	}

	exeTime, ok := modTime(executable)
	if !ok {
		return true
	}

	return sourceTime.After(exeTime) || objectTime.After(exeTime)
}
