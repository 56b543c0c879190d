package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/liveradio/internal/app"
	"github.com/llehouerou/liveradio/internal/audio"
	"github.com/llehouerou/liveradio/internal/config"
	"github.com/llehouerou/liveradio/internal/errmsg"
	"github.com/llehouerou/liveradio/internal/icons"
	"github.com/llehouerou/liveradio/internal/lastfm"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/mpris"
	"github.com/llehouerou/liveradio/internal/notify"
	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/state"
	"github.com/llehouerou/liveradio/internal/stderr"
	"github.com/llehouerou/liveradio/internal/ui/playerbar"
)

var errNoStream = errors.New("no stream configured: set stream.url in config.toml or LIVERADIO_STREAM_URL")

func main() {
	heard := flag.Int("heard", 0, "print the last `n` tracks you listened to and exit")
	flag.Parse()

	var err error
	if *heard > 0 {
		err = printHeard(*heard)
	} else {
		err = run()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasStream() {
		return errNoStream
	}

	logCloser, err := logging.Init(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logCloser = io.NopCloser(nil)
	}
	defer logCloser.Close()
	log := logging.Component("main")

	capture, err := stderr.Start(logging.Component("audio"))
	if err != nil {
		log.Warn().Err(err).Msg("stderr capture disabled")
	}
	defer capture.Stop()

	icons.Init(cfg.Icons)

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	statusCfg := cfg.GetStatusConfig()
	playbackCfg := cfg.GetPlaybackConfig()

	player := playback.New(
		func() (audio.Output, error) {
			return audio.NewStream(cfg.Stream.URL, playbackCfg.StallThreshold), nil
		},
		nowplaying.New(statusCfg.URL, statusCfg.Timeout),
		playback.Config{
			DefaultVolume:   playbackCfg.DefaultVolume,
			LoadTimeout:     playbackCfg.LoadTimeout,
			PollInterval:    statusCfg.PollInterval,
			MaxPollInterval: statusCfg.MaxPollInterval,
		},
		playback.WithVolumeStore(stateMgr),
		playback.WithHistory(stateMgr),
		playback.WithLogger(logging.Component("playback")),
	)
	defer player.Close()
	player.Start()

	// Watchers finish their work (the last scrobble) before the player and
	// the state database close.
	var watchers sync.WaitGroup
	defer watchers.Wait()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if adapter, err := mpris.New(player); err != nil {
		log.Warn().Err(err).Msg("media keys unavailable")
	} else {
		defer adapter.Close()
	}

	if cfg.NotificationsEnabled() {
		startNotifications(ctx, &watchers, player)
	}

	if cfg.HasLastfmConfig() {
		startScrobbler(ctx, &watchers, cfg, stateMgr, player)
	}

	m := app.New(player, app.Options{PlayerMode: playerbar.ModeExpanded, ShowPlaylist: true})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func startNotifications(ctx context.Context, wg *sync.WaitGroup, player *playback.Synchronizer) {
	log := logging.Component("main")

	n, err := notify.New()
	if err != nil {
		log.Warn().Err(err).Str(logging.FieldOp, string(errmsg.OpNotify)).Msg("notifications unavailable")
		return
	}
	art, err := notify.NewArtCache()
	if err != nil {
		log.Warn().Err(err).Msg("notifications without cover art")
		art = nil
	}
	watcher, sub := notify.NewWatcher(n, art), player.Watch()
	wg.Go(func() { watcher.Run(ctx, sub) })
}

func startScrobbler(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, stateMgr *state.Manager, player *playback.Synchronizer) {
	log := logging.Component("main")

	sessionKey := cfg.Lastfm.SessionKey
	if sessionKey == "" {
		session, err := stateMgr.GetLastfmSession()
		if err != nil {
			log.Warn().Err(err).Msg("read last.fm session")
		}
		if session != nil {
			sessionKey = session.SessionKey
		}
	}
	if sessionKey == "" {
		log.Info().Msg("last.fm configured but not linked; run lastfm-auth")
		return
	}

	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	client.SetSessionKey(sessionKey)
	scrobbler, sub := lastfm.NewScrobbler(client, stateMgr), player.Watch()
	wg.Go(func() { scrobbler.Run(ctx, sub) })
}

func printHeard(n int) error {
	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	tracks, err := stateMgr.RecentHeard(n)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(tracks) == 0 {
		fmt.Println("Nothing heard yet.")
		return nil
	}
	for _, t := range tracks {
		song := nowplaying.Song{Artist: t.Artist, Title: t.Title}
		fmt.Printf("%-16s %s\n", humanize.Time(t.HeardAt), song.Display(nowplaying.FallbackNowPlaying))
	}
	return nil
}
