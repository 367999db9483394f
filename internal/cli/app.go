package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mmcdole/noor/internal/cache"
	"github.com/mmcdole/noor/internal/config"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/log"
	"github.com/mmcdole/noor/internal/player"
	"github.com/mmcdole/noor/internal/prefs"
	"github.com/mmcdole/noor/internal/service"
	"github.com/mmcdole/noor/internal/source"
	"github.com/mmcdole/noor/internal/source/aladhan"
	"github.com/mmcdole/noor/internal/source/alquran"
	"github.com/mmcdole/noor/internal/source/geocode"
	"github.com/mmcdole/noor/internal/source/hadithapi"
	"github.com/mmcdole/noor/internal/source/ipgeo"
	"github.com/mmcdole/noor/internal/store"
	"github.com/mmcdole/noor/internal/tui"
	"github.com/spf13/cobra"
)

// app is everything a command needs, built once from configuration
type app struct {
	Config   *config.Config
	Loader   *config.Loader
	Logger   *slog.Logger
	Backend  *store.Backend
	Cache    *cache.Cache
	Prefs    *prefs.Store
	Services tui.Services

	logFile io.Closer
}

// openApp loads configuration, sets up logging, opens the store and builds
// the services. Callers must Close the result.
func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	loader := config.NewLoader(opts.configDir, opts.envFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := log.Setup(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, logFile = log.Null(), nil
	}
	slog.SetDefault(logger)
	logger.Info("starting noor", "version", Version, "backend", cfg.Store.Backend)

	backend, err := store.OpenBackend(ctx, store.Options{
		Backend: cfg.Store.Backend,
		Dir:     cfg.Store.Dir,
		Redis: store.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		},
	})
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	policy := cache.DefaultPolicy().
		WithTTL(cache.CategorySurahs, cfg.Cache.Surahs).
		WithTTL(cache.CategoryAyahs, cfg.Cache.Ayahs).
		WithTTL(cache.CategoryPrayerTimes, cfg.Cache.PrayerTimes).
		WithTTL(cache.CategoryHadiths, cfg.Cache.Hadiths)

	c := cache.New(backend.Cache, logger, cache.WithPolicy(policy))
	p := prefs.New(backend.Prefs, logger)

	a := &app{
		Config:   cfg,
		Loader:   loader,
		Logger:   logger,
		Backend:  backend,
		Cache:    c,
		Prefs:    p,
		Services: newServices(cfg, c, p, logger),
		logFile:  logFile,
	}

	if cfg.Prayer.HasLocation() {
		a.syncConfiguredLocation(ctx)
	}
	return a, nil
}

// newServices builds the upstream clients and the services over them
func newServices(cfg *config.Config, c *cache.Cache, p *prefs.Store, logger *slog.Logger) tui.Services {
	api := func(baseURL string) source.Config {
		retries := cfg.API.Retries
		if retries == 0 {
			retries = -1
		}
		return source.Config{BaseURL: baseURL, Timeout: cfg.API.Timeout, MaxRetries: retries}
	}

	aladhanClient := aladhan.New(api(cfg.API.AladhanURL), logger)

	locator := ipgeo.Chain{}
	if cfg.Prayer.HasLocation() {
		locator = append(locator, ipgeo.Static{Location: configuredLocation(cfg)})
	}
	locator = append(locator, ipgeo.New(api(cfg.API.IPGeoURL), logger))

	quran := service.NewQuranService(alquran.New(api(cfg.API.QuranURL), logger), c, p, cfg.Quran.TextEdition, cfg.Quran.TranslationEdition, logger)

	return tui.Services{
		Quran:    quran,
		Hadith:   service.NewHadithService(hadithapi.New(api(cfg.API.HadithURL), logger), c, p, cfg.Hadith.Limit, logger),
		Calendar: service.NewCalendarService(aladhanClient, c, time.Now, logger),
		Prayer:   service.NewPrayerService(aladhanClient, c, p, cfg.Prayer.Method, time.Now, logger),
		Location: service.NewLocationService(locator, geocode.New(api(cfg.API.GeocodeURL), logger), p, logger),
		Playback: service.NewPlaybackService(player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger), quran, logger),
		Prefs:    p,
	}
}

func configuredLocation(cfg *config.Config) domain.Location {
	return domain.Location{
		Latitude:  cfg.Prayer.Latitude,
		Longitude: cfg.Prayer.Longitude,
		City:      cfg.Prayer.City,
	}
}

// syncConfiguredLocation makes a location fixed in config.yaml win over a
// previously detected one
func (a *app) syncConfiguredLocation(ctx context.Context) {
	want := configuredLocation(a.Config)
	if saved, ok := a.Services.Location.Saved(); ok &&
		saved.Latitude == want.Latitude && saved.Longitude == want.Longitude {
		return
	}
	if _, err := a.Services.Location.Update(ctx, want); err != nil {
		a.Logger.Warn("failed to apply configured location", "error", err)
	}
}

// Close releases the store and the log file
func (a *app) Close() error {
	a.Logger.Info("shutting down")
	err := a.Backend.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}

// withApp adapts a command body that needs the app into a cobra RunE
func withApp(opts *rootOptions, fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, cmd, args)
	}
}
