// Package player hands recitation audio to an external media player.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoPlayer is returned when neither a configured, a detected nor the
// system default player could be started
var ErrNoPlayer = errors.New("no audio player available")

// Launcher starts an external player on a queue of audio URLs
type Launcher struct {
	command string   // configured player command, empty for detection
	args    []string // additional arguments for the player
	logger  *slog.Logger

	goos     string
	lookPath func(file string) (string, error)
	start    func(cmd *exec.Cmd) error // detached launch
	run      func(cmd *exec.Cmd) error // launch and wait, for macOS "open -a"
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", "vlc", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// playerConfig defines how a player is started for background audio
type playerConfig struct {
	audioArgs []string                // keep the player windowless and off the terminal
	queue     bool                    // accepts several URLs as a playlist
	platforms map[string][]launchPath // Platform -> launch paths to try in order
}

// players registry - single source of truth for all player configuration
var players = map[string]playerConfig{
	"mpv": {
		audioArgs: []string{"--no-video", "--no-terminal"},
		queue:     true,
		platforms: map[string][]launchPath{
			"darwin":  {{path: "mpv"}},
			"linux":   {{path: "mpv"}},
			"windows": {{path: "mpv"}},
		},
	},
	"vlc": {
		audioArgs: []string{"--intf", "dummy", "--play-and-exit"},
		queue:     true,
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "vlc"},
				{path: "open-a:VLC"},
			},
			"linux":   {{path: "cvlc"}, {path: "vlc"}},
			"windows": {{path: "vlc"}},
		},
	},
	"iina": {
		queue: true,
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "open-a:IINA", openFlags: []string{"-n"}},
			},
		},
	},
	"celluloid": {
		queue: true,
		platforms: map[string][]launchPath{
			"linux": {{path: "celluloid"}},
		},
	},
	"ffplay": {
		audioArgs: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"},
		platforms: map[string][]launchPath{
			"darwin":  {{path: "ffplay"}},
			"linux":   {{path: "ffplay"}},
			"windows": {{path: "ffplay"}},
		},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"mpv", "iina", "vlc", "ffplay"},
	"linux":   {"mpv", "vlc", "celluloid", "ffplay"},
	"windows": {"mpv", "vlc", "ffplay"},
}

// NewLauncher creates a Launcher. A known player command without explicit
// args gets that player's background-audio arguments.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	resolved := args
	if len(resolved) == 0 && command != "" {
		if cfg, ok := players[playerName(command)]; ok && len(cfg.audioArgs) > 0 {
			resolved = cfg.audioArgs
			logger.Debug("using player audio arguments", "player", playerName(command), "args", resolved)
		}
	}

	return &Launcher{
		command:  command,
		args:     resolved,
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    (*exec.Cmd).Start,
		run:      (*exec.Cmd).Run,
	}
}

// playerName reduces a command path to its registry key ("/usr/bin/mpv.exe" -> "mpv")
func playerName(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// Launch plays urls in order in the configured player, a detected one or
// the system default handler. Players that take a single input get the
// first URL only.
func (l *Launcher) Launch(urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("%w: nothing to play", ErrNoPlayer)
	}

	// Tier 1: User configured a specific player
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command, "tracks", len(urls))
		return l.launchConfigured(urls)
	}

	// Tier 2: Try candidate chain
	if _, err := l.detectAndLaunch(urls); err == nil {
		return nil
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no candidate players found, using system default")
	return l.launchDefault(urls[0])
}

// detectAndLaunch tries candidate players in order and returns the name of
// the one that started
func (l *Launcher) detectAndLaunch(urls []string) (string, error) {
	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		player, exists := players[name]
		if !exists {
			continue
		}

		launchPaths, ok := player.platforms[l.goos]
		if !ok {
			continue
		}

		queue := urls
		if !player.queue {
			queue = urls[:1]
		}

		for _, lp := range launchPaths {
			var err error
			if appName, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
				err = l.openWithApp(appName, queue, player.audioArgs, lp.openFlags)
			} else {
				err = l.launchCommand(lp.path, queue, player.audioArgs)
			}

			if err == nil {
				l.logger.Info("launched with detected player", "player", name, "path", lp.path, "tracks", len(queue))
				return name, nil
			}
			l.logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
		}
	}

	return "", ErrNoPlayer
}

// openWithApp opens urls with a macOS app using "open -a". It waits for
// open(1), which fails when the app does not exist.
func (l *Launcher) openWithApp(appName string, urls, playerArgs, openFlags []string) error {
	cmdArgs := append([]string{}, openFlags...)
	cmdArgs = append(cmdArgs, "-a", appName)
	if len(playerArgs) > 0 {
		cmdArgs = append(cmdArgs, "--args")
		cmdArgs = append(cmdArgs, playerArgs...)
	}
	cmdArgs = append(cmdArgs, urls...)

	return l.run(exec.Command("open", cmdArgs...))
}

// launchCommand starts command from PATH without waiting for it
func (l *Launcher) launchCommand(command string, urls, args []string) error {
	if _, err := l.lookPath(command); err != nil {
		return err
	}
	cmdArgs := append(append([]string{}, args...), urls...)
	return l.start(exec.Command(command, cmdArgs...))
}

// launchConfigured starts the configured player with the whole queue
func (l *Launcher) launchConfigured(urls []string) error {
	if l.goos == "darwin" {
		if _, err := l.lookPath(l.command); err != nil {
			// GUI apps outside PATH go through "open -a"
			var openFlags []string
			if cfg, ok := players[playerName(l.command)]; ok {
				for _, lp := range cfg.platforms["darwin"] {
					if strings.HasPrefix(lp.path, "open-a:") {
						openFlags = lp.openFlags
						break
					}
				}
			}
			l.logger.Info("using macOS 'open -a' to launch GUI app", "app", l.command)
			return l.openWithApp(l.command, urls, l.args, openFlags)
		}
	}

	l.logger.Info("launching player", "command", l.command, "args", l.args, "tracks", len(urls))
	if err := l.launchCommand(l.command, urls, l.args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNoPlayer, l.command, err)
	}
	return nil
}

// launchDefault opens url using the system default handler
func (l *Launcher) launchDefault(url string) error {
	var cmd *exec.Cmd

	switch l.goos {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	l.logger.Info("launching with system default", "os", l.goos, "url", url)

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("%w: %v", ErrNoPlayer, err)
	}
	return nil
}
