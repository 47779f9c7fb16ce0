package scb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allPlatforms = []Platform{PlatformLinux, PlatformMacOS, PlatformWindows, PlatformUnknown}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(PlatformLinux, "unix"))
	assert.True(t, Matches(PlatformMacOS, "unix"))
	assert.False(t, Matches(PlatformWindows, "unix"))
	assert.False(t, Matches(PlatformUnknown, "unix"))
	assert.False(t, Matches(PlatformLinux, "bogus"))

	for _, p := range allPlatforms {
		assert.True(t, Matches(p, "default"), p.String())
		assert.True(t, Matches(p, ""), p.String())
	}

	for _, target := range []string{"linux", "macos", "windows"} {
		for _, p := range allPlatforms {
			assert.Equal(t, p.String() == target, Matches(p, target), "%s on %s", target, p)
		}
	}
}

func TestMatchesIsCaseSensitive(t *testing.T) {
	assert.False(t, Matches(PlatformLinux, "Linux"))
	assert.False(t, Matches(PlatformLinux, "UNIX"))
}

func TestPlatformFromGOOS(t *testing.T) {
	assert.Equal(t, PlatformLinux, PlatformFromGOOS("linux"))
	assert.Equal(t, PlatformMacOS, PlatformFromGOOS("darwin"))
	assert.Equal(t, PlatformWindows, PlatformFromGOOS("windows"))
	assert.Equal(t, PlatformUnknown, PlatformFromGOOS("plan9"))
}

func TestDefaultToolchain(t *testing.T) {
	for _, p := range allPlatforms {
		assert.NotEmpty(t, p.DefaultCompiler(), p.String())
		assert.NotEmpty(t, p.DefaultLinker(), p.String())
	}

	assert.Equal(t, "gcc", PlatformLinux.DefaultCompiler())
	assert.Equal(t, "gcc", PlatformWindows.DefaultLinker())
}

func TestExecutableCandidates(t *testing.T) {
	assert.Equal(t, []string{"app"}, PlatformLinux.executableCandidates("app"))
	assert.Equal(t, []string{"app", "app.exe"}, PlatformWindows.executableCandidates("app"))
	assert.Equal(t, []string{"app.exe"}, PlatformWindows.executableCandidates("app.exe"))
}
