package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/audiolib/internal/domain"
	"github.com/bnema/audiolib/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestLibraryKeys(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "library", "keys", "--library", "level1")
	require.NoError(t, err)
	assert.Equal(t, "win\ndoor\n", stdout)

	stdout, _, err = executeCLI(t, home, "library", "keys", "--library", "level1", "--inherited")
	require.NoError(t, err)
	assert.Equal(t, "win\ndoor\nlose\n", stdout)
}

func TestLibraryKeysRequiresLibraryFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "library", "keys")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"library\" not set")
}

func TestLibraryKeysUnknownLibrary(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	_, _, err := executeCLI(t, home, "library", "keys", "--library", "nope")
	require.ErrorIs(t, err, domain.ErrLibraryNotFound)
}

func TestLibraryInherited(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "library", "inherited", "--library", "level1")
	require.NoError(t, err)
	assert.Equal(t, "lose\n", stdout)

	stdout, _, err = executeCLI(t, home, "library", "inherited", "--library", "base")
	require.NoError(t, err)
	assert.Equal(t, "library base has no parent\n", stdout)
}

func TestLibraryShowRendersChainAndOrigins(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "library", "show", "--library", "level1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Level one (level1)")
	assert.Contains(t, stdout, "chain: level1 -> base")
	assert.Contains(t, stdout, "* win")
	assert.Contains(t, stdout, "^ lose")
}

func TestLibraryShowJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "library", "show", "--library", "level1", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var view struct {
		ID        string   `json:"id"`
		Chain     []string `json:"chain"`
		Inherited []string `json:"inherited"`
		Keys      []struct {
			Key    string `json:"key"`
			Origin string `json:"origin"`
			Source string `json:"source"`
		} `json:"keys"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "level1", view.ID)
	assert.Equal(t, []string{"level1", "base"}, view.Chain)
	assert.Equal(t, []string{"lose"}, view.Inherited)
	require.Len(t, view.Keys, 3)
	assert.Equal(t, "override", view.Keys[0].Origin)
	assert.Equal(t, "local", view.Keys[1].Origin)
	assert.Equal(t, "inherited", view.Keys[2].Origin)
	assert.Equal(t, "base", view.Keys[2].Source)
}

func TestLibraryShowYAMLOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "library", "show", "--library", "level1", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "id: level1")
	assert.Contains(t, stdout, "origin: inherited")
}

func TestLibraryShowRejectsJSONAndYAMLTogether(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	_, _, err := executeCLI(t, home, "library", "show", "--library", "level1", "--json", "--yaml")
	require.Error(t, err)
}

func TestLibraryList(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "library", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "libraries: 2")
	assert.Contains(t, stdout, "Base (base) [master]")
	assert.Contains(t, stdout, "overrides: 1, inherited: 1")
}

func TestLibraryCheckCleanFixture(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "library", "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no issues")
}

func TestLibraryCheckReportsCycle(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFile(home, `version = 1

[[libraries]]
id = "a"
master = false
parent = "b"

[[libraries]]
id = "b"
master = false
parent = "a"
`))

	stdout, _, err := executeCLI(t, home, "library", "check")
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, stdout, "error:")
	assert.Contains(t, stdout, "a -> b -> a")
}

func TestLibrarySetCreatesLibraryAndEntry(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"library", "set",
		"--library", "ui",
		"--key", "click",
		"--clip", "click1",
		"--clip", "click2",
		"--selection", "sequential",
		"--volume", "0.4",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved ui/click (2 clips)")

	stdout, _, err = executeCLI(t, home, "library", "keys", "--library", "ui")
	require.NoError(t, err)
	assert.Equal(t, "click\n", stdout)

	data, err := os.ReadFile(filepath.Join(home, ".audiolib", "libraries.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "selection = 'sequential'")
}

func TestLibrarySetRejectsCycle(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	_, _, err := executeCLI(t, home,
		"library", "set",
		"--library", "base",
		"--key", "win",
		"--clip", "fanfare",
		"--parent", "level1",
	)
	require.ErrorIs(t, err, domain.ErrParentCycle)
}

func TestLibrarySetRepairsCycleInFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFile(home, `version = 1

[[libraries]]
id = "a"
master = false
parent = "b"

[[libraries]]
id = "b"
master = false
parent = "a"
`))

	stdout, _, err := executeCLI(t, home,
		"library", "set",
		"--library", "a",
		"--key", "click",
		"--clip", "click1",
		"--parent", "",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved a/click (1 clips)")

	stdout, _, err = executeCLI(t, home, "library", "inherited", "--library", "b")
	require.NoError(t, err)
	assert.Contains(t, stdout, "click")
}

func TestLibrarySetRejectsInvalidVolume(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	_, _, err := executeCLI(t, home,
		"library", "set",
		"--library", "base",
		"--key", "loud",
		"--clip", "boom",
		"--volume", "1.5",
	)
	require.ErrorIs(t, err, domain.ErrInvalidEntry)
}

func TestPlayResolvesOverrideAndReleasesSources(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "play", "--library", "level1", "--key", "win")
	require.NoError(t, err)
	assert.Contains(t, stdout, "played jingle on default (volume 0.50)")
	assert.Contains(t, stdout, "master volume: 1.00")
	assert.Contains(t, stdout, "pool: created 4, idle 4, in use 0, pending 0")
}

func TestPlayInheritedKeyWithRouteAndMasterVolume(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home,
		"play",
		"--library", "level1",
		"--key", "lose",
		"--route", "music",
		"--master-volume", "0.5",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "played sad on music (volume 1.00)")
	assert.Contains(t, stdout, "master volume: 0.50")
}

func TestPlayRepeatCyclesSequentialClipsAfterDelay(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	stdout, _, err := executeCLI(t, home, "play", "--library", "level1", "--key", "door", "--repeat", "3", "--metrics")
	require.NoError(t, err)

	creak := strings.Index(stdout, "played creak")
	squeak := strings.Index(stdout, "played squeak")
	require.GreaterOrEqual(t, creak, 0)
	require.GreaterOrEqual(t, squeak, 0)
	assert.Less(t, creak, squeak)
	assert.Equal(t, 2, strings.Count(stdout, "played creak"))

	assert.Contains(t, stdout, `audiolib_playback_events_total{event="scheduled"} 3`)
	assert.Contains(t, stdout, `audiolib_playback_events_total{event="completed"} 3`)
	assert.Contains(t, stdout, `audiolib_pool_sources{state="in_use"} 0`)
}

func TestPlayUnknownKeyFails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeLibrariesFixture(home))

	_, _, err := executeCLI(t, home, "play", "--library", "base", "--key", "door")
	require.ErrorIs(t, err, errNothingToPlay)
}

func TestLibrariesPathFromEnvironment(t *testing.T) {
	home := t.TempDir()
	custom := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(custom, []byte(librariesFixture), 0o600))
	t.Setenv("AUDIOLIB_LIBRARIES_PATH", custom)

	stdout, _, err := executeCLI(t, home, "library", "keys", "--library", "base")
	require.NoError(t, err)
	assert.Equal(t, "win\nlose\n", stdout)
}

func TestInvalidLogLevelFailsWiring(t *testing.T) {
	home := t.TempDir()
	t.Setenv("AUDIOLIB_LOG_LEVEL", "chatty")

	_, _, err := executeCLI(t, home, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("AUDIOLIB_PLAYBACK_CLIP_DURATION", "20ms")
	t.Setenv("AUDIOLIB_PLAYBACK_TICK_INTERVAL", "2ms")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

const librariesFixture = `version = 1

[[libraries]]
id = "base"
name = "Base"

[[libraries.entries]]
key = "win"
clips = ["fanfare"]
volume = 0.8
route = "sfx"

[[libraries.entries]]
key = "lose"
clips = ["sad"]
selection = "sequential"

[[libraries]]
id = "level1"
name = "Level one"
master = false
parent = "base"

[[libraries.entries]]
key = "win"
clips = ["jingle"]
volume = 0.5

[[libraries.entries]]
key = "door"
clips = ["creak", "squeak"]
selection = "sequential"
delay = 0.05
`

func writeLibrariesFixture(home string) error {
	return writeLibrariesFile(home, librariesFixture)
}

func writeLibrariesFile(home, contents string) error {
	configDir := filepath.Join(home, ".audiolib")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "libraries.toml"), []byte(contents), 0o644)
}
