package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/noor/internal/domain"
)

// launcher abstracts the external audio player (consumer-defined interface)
type launcher interface {
	Launch(urls []string) error
}

// Recitation describes a queue handed to the player
type Recitation struct {
	Surah   domain.Surah
	Reciter domain.Reciter
	From    int // first numberInSurah queued
	Tracks  int
}

// PlaybackService plays surah recitations in an external player
type PlaybackService struct {
	launcher launcher
	quran    *QuranService
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, quran *QuranService, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		quran:    quran,
		logger:   logger,
	}
}

// PlaySurah queues the recitation of surah from ayah `from` (1-based) to the
// end. An empty reciterID uses the selected reciter. The ayahs come through
// the cache, so playing a surah that is open costs no request.
func (s *PlaybackService) PlaySurah(ctx context.Context, surah domain.Surah, reciterID string, from int) (Recitation, error) {
	reciter := s.quran.SelectedReciter()
	if reciterID != "" && reciterID != reciter.ID {
		reciter = domain.Reciter{ID: reciterID, Name: reciterID}
		for _, r := range s.quran.Reciters() {
			if r.ID == reciterID {
				reciter = r
				break
			}
		}
	}
	if from < 1 {
		from = 1
	}

	ayahs, err := s.quran.Ayahs(ctx, surah.Number, reciter.ID)
	if err != nil {
		return Recitation{}, err
	}

	urls := make([]string, 0, len(ayahs))
	for _, a := range ayahs {
		if a.NumberInSurah >= from && a.Audio != "" {
			urls = append(urls, a.Audio)
		}
	}
	if len(urls) == 0 {
		return Recitation{}, fmt.Errorf("no recitation audio for surah %d from ayah %d: %w", surah.Number, from, domain.ErrNotFound)
	}

	s.logger.Info("launching recitation", "surah", surah.Number, "reciter", reciter.ID, "from", from, "tracks", len(urls))

	if err := s.launcher.Launch(urls); err != nil {
		s.logger.Error("failed to launch player", "error", err, "surah", surah.Number)
		return Recitation{}, err
	}
	return Recitation{Surah: surah, Reciter: reciter, From: from, Tracks: len(urls)}, nil
}
