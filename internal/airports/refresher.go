package airports

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/flighttime-data/internal/common/logger"
	"github.com/flighttime-data/internal/metrics"
)

const refresherTimeout = 2 * time.Minute

// Refresher periodically re-downloads the airports data file from a
// source URL and swaps the directory contents in place. Downloads are
// conditional on Last-Modified, so an unchanged dataset costs one
// header roundtrip.
type Refresher struct {
	config    RefresherConfig
	directory *Directory
	parser    *Parser
	client    *http.Client
	logger    logger.Logger

	mu           sync.Mutex
	running      bool
	cancel       context.CancelFunc
	lastModified string
}

type RefresherConfig struct {
	URL           string
	CheckInterval time.Duration
}

func NewRefresher(config RefresherConfig, directory *Directory, log logger.Logger) *Refresher {
	return &Refresher{
		config:    config,
		directory: directory,
		parser:    NewParser(log),
		client: &http.Client{
			Timeout: refresherTimeout,
		},
		logger: log,
	}
}

func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("refresher already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true
	r.mu.Unlock()

	r.logger.Info("Starting airport directory refresher",
		"url", r.config.URL,
		"check_interval", r.config.CheckInterval)

	ticker := time.NewTicker(r.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Airport directory refresher stopped")
			return nil
		case <-ticker.C:
			if err := r.refresh(ctx); err != nil {
				r.logger.Error("Airport directory refresh failed", "error", err)
			}
		}
	}
}

func (r *Refresher) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return fmt.Errorf("refresher not running")
	}

	if r.cancel != nil {
		r.cancel()
	}

	r.running = false
	return nil
}

func (r *Refresher) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.URL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	r.mu.Lock()
	if r.lastModified != "" {
		req.Header.Set("If-Modified-Since", r.lastModified)
	}
	r.mu.Unlock()

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching airports data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		r.logger.Debug("Airports data not modified")
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	airports, err := r.parser.Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("parsing airports data: %w", err)
	}

	r.directory.Swap(airports)
	metrics.SetAirportsLoaded(len(airports))

	r.mu.Lock()
	r.lastModified = resp.Header.Get("Last-Modified")
	r.mu.Unlock()

	r.logger.Info("Airport directory refreshed",
		"airports", len(airports),
		"last_modified", resp.Header.Get("Last-Modified"))

	return nil
}
