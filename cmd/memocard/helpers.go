package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/memocard/internal/apiclient"
	"github.com/at-ishikawa/memocard/internal/cli"
	"github.com/at-ishikawa/memocard/internal/config"
	"github.com/at-ishikawa/memocard/internal/deck"
)

const retryBackoff = 200 * time.Millisecond

var errUserRequired = errors.New("user.id is required: set it in the config file or MEMOCARD_USER_ID")

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *apiclient.Client {
	return apiclient.NewClient(cfg.API.BaseURL,
		apiclient.WithToken(cfg.API.Token),
		apiclient.WithTimeout(cfg.API.Timeout()),
		apiclient.WithRetry(cfg.API.MaxRetryAttempts, retryBackoff),
		apiclient.WithGenerationTimeout(cfg.Generation.Timeout()),
	)
}

// deckSession bundles what the deck and card commands share.
type deckSession struct {
	cfg     *config.Config
	client  *apiclient.Client
	manager *deck.Manager
	view    *cli.DeckView
}

func (session *deckSession) Close() error {
	return session.client.Close()
}

// newDeckSession loads the configuration and builds a deck manager printing to out.
// Without navigate, opening a deck does not print it.
func newDeckSession(out io.Writer, navigate bool) (*deckSession, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.User.ID == "" {
		return nil, errUserRequired
	}

	client := newClient(cfg)
	view := cli.NewDeckView(out)
	var navigator deck.Navigator
	if navigate {
		navigator = view
	}
	return &deckSession{
		cfg:     cfg,
		client:  client,
		manager: deck.NewManager(client, cfg.User.ID, cli.NewColorNotifier(out), navigator,
			deck.WithDueLimit(cfg.Review.Limit)),
		view:    view,
	}, nil
}
