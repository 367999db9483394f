package player

import (
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var queue = []string{"https://cdn.example.org/1.mp3", "https://cdn.example.org/2.mp3"}

// recorder stands in for the OS: only installed commands resolve, and every
// launch is captured instead of executed
type recorder struct {
	installed map[string]bool
	started   [][]string
	ran       [][]string
	failStart bool
}

func (r *recorder) attach(l *Launcher, goos string) {
	l.goos = goos
	l.lookPath = func(file string) (string, error) {
		if r.installed[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
	l.start = func(cmd *exec.Cmd) error {
		if r.failStart {
			return errors.New("exec failed")
		}
		r.started = append(r.started, cmd.Args)
		return nil
	}
	l.run = func(cmd *exec.Cmd) error {
		r.ran = append(r.ran, cmd.Args)
		return errors.New("app not found")
	}
}

func TestLauncher_ConfiguredPlayerGetsAudioArgs(t *testing.T) {
	rec := &recorder{installed: map[string]bool{"/opt/bin/mpv": true}}
	l := NewLauncher("/opt/bin/mpv", nil, quietLogger)
	rec.attach(l, "linux")

	require.NoError(t, l.Launch(queue))
	require.Len(t, rec.started, 1)
	assert.Equal(t, []string{"/opt/bin/mpv", "--no-video", "--no-terminal", queue[0], queue[1]}, rec.started[0])
}

func TestLauncher_ExplicitArgsWin(t *testing.T) {
	rec := &recorder{installed: map[string]bool{"mpv": true}}
	l := NewLauncher("mpv", []string{"--volume=50"}, quietLogger)
	rec.attach(l, "linux")

	require.NoError(t, l.Launch(queue[:1]))
	assert.Equal(t, []string{"mpv", "--volume=50", queue[0]}, rec.started[0])
}

func TestLauncher_ConfiguredPlayerMissing(t *testing.T) {
	rec := &recorder{installed: map[string]bool{}}
	l := NewLauncher("mpv", nil, quietLogger)
	rec.attach(l, "linux")

	err := l.Launch(queue)
	require.ErrorIs(t, err, ErrNoPlayer)
	assert.Empty(t, rec.started)
}

func TestLauncher_DetectsFirstInstalledCandidate(t *testing.T) {
	rec := &recorder{installed: map[string]bool{"cvlc": true, "ffplay": true}}
	l := NewLauncher("", nil, quietLogger)
	rec.attach(l, "linux")

	require.NoError(t, l.Launch(queue))
	require.Len(t, rec.started, 1)
	assert.Equal(t, []string{"cvlc", "--intf", "dummy", "--play-and-exit", queue[0], queue[1]}, rec.started[0])
}

func TestLauncher_SingleInputPlayerGetsFirstURL(t *testing.T) {
	rec := &recorder{installed: map[string]bool{"ffplay": true}}
	l := NewLauncher("", nil, quietLogger)
	rec.attach(l, "windows")

	require.NoError(t, l.Launch(queue))
	assert.Equal(t, []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", queue[0]}, rec.started[0])
}

func TestLauncher_FallsBackToSystemDefault(t *testing.T) {
	rec := &recorder{installed: map[string]bool{}}
	l := NewLauncher("", nil, quietLogger)
	rec.attach(l, "linux")

	require.NoError(t, l.Launch(queue))
	require.Len(t, rec.started, 1)
	assert.Equal(t, []string{"xdg-open", queue[0]}, rec.started[0])
}

func TestLauncher_MacOpensAppBundles(t *testing.T) {
	rec := &recorder{installed: map[string]bool{}}
	l := NewLauncher("", nil, quietLogger)
	rec.attach(l, "darwin")

	require.NoError(t, l.Launch(queue))
	// IINA and VLC bundles were tried through open(1) before the default handler
	require.Len(t, rec.ran, 2)
	assert.Equal(t, []string{"open", "-n", "-a", "IINA", queue[0], queue[1]}, rec.ran[0])
	assert.Equal(t, []string{"open", "-a", "VLC", "--args", "--intf", "dummy", "--play-and-exit", queue[0], queue[1]}, rec.ran[1])
	assert.Equal(t, []string{"open", queue[0]}, rec.started[0])
}

func TestLauncher_NothingToPlay(t *testing.T) {
	l := NewLauncher("mpv", nil, quietLogger)
	require.ErrorIs(t, l.Launch(nil), ErrNoPlayer)
}

func TestLauncher_DefaultHandlerFailure(t *testing.T) {
	rec := &recorder{installed: map[string]bool{}, failStart: true}
	l := NewLauncher("", nil, quietLogger)
	rec.attach(l, "linux")

	require.ErrorIs(t, l.Launch(queue), ErrNoPlayer)
}
