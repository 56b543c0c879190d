// Command lastfm-auth links a Last.fm account and stores the session key
// used for scrobbling.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/llehouerou/liveradio/internal/config"
	"github.com/llehouerou/liveradio/internal/lastfm"
	"github.com/llehouerou/liveradio/internal/state"
)

const authTimeout = 5 * time.Minute

func main() {
	unlink := flag.Bool("unlink", false, "forget the stored Last.fm session")
	flag.Parse()

	var err error
	if *unlink {
		err = unlinkSession()
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
	if !cfg.HasLastfmConfig() {
		return fmt.Errorf("set lastfm.api_key and lastfm.api_secret first")
	}

	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)

	token, err := client.GetToken()
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	server, err := lastfm.StartAuthServer()
	if err != nil {
		return err
	}
	defer server.Shutdown()

	url := client.GetAuthURL(token)
	fmt.Printf("Authorize Live Radio in your browser:\n  %s\n", url)
	if err := lastfm.OpenBrowser(url); err != nil {
		fmt.Println("Could not open a browser, open the link above manually.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if server.WaitForToken(ctx, authTimeout) == "" {
		return fmt.Errorf("authorization not completed")
	}

	username, sessionKey, err := client.GetSession(token)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	if err := stateMgr.SaveLastfmSession(username, sessionKey); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("Linked Last.fm account %s.\nSession key: %s\n", username, sessionKey)
	return nil
}

func unlinkSession() error {
	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	if err := stateMgr.DeleteLastfmSession(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	fmt.Println("Last.fm session removed.")
	return nil
}
