package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/schedule"
)

// Scheduler job names. Each concern owns exactly one entry.
const (
	ClockJob    = "clock-tick"
	RolloverJob = "day-rollover"
)

// Sender delivers messages into a running program; *tea.Program satisfies it
type Sender interface {
	Send(msg tea.Msg)
}

// StartClock registers the per-second tick and the midnight rollover on s
// and starts it. Stopping s cancels both.
func StartClock(s *schedule.Scheduler, p Sender, now domain.Clock) error {
	if now == nil {
		now = time.Now
	}

	if err := s.Every(ClockJob, schedule.EverySecond, func() {
		p.Send(ClockTickMsg{Now: now()})
	}); err != nil {
		return fmt.Errorf("clock tick: %w", err)
	}

	if err := s.Every(RolloverJob, schedule.Midnight, func() {
		p.Send(DayRolloverMsg{Now: now()})
	}); err != nil {
		s.Cancel(ClockJob)
		return fmt.Errorf("day rollover: %w", err)
	}

	s.Start()
	return nil
}

// Run shows the UI until the user quits. The scheduler's jobs live exactly
// as long as the program.
func Run(model Model, s *schedule.Scheduler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if err := StartClock(s, p, model.svc.Prayer.Now); err != nil {
		return err
	}
	defer s.Stop()

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
