// Package sync keeps a local copy of a remotely published Dojo manifest.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Mohsinsiddi/universe/internal/config"
	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/ethereum/go-ethereum/log"
)

// Errors.
var (
	// ErrNoSource is returned when Run is called before a source is set.
	ErrNoSource = errors.New("no sync source configured")
	// ErrManifestTooLarge is returned when the source serves more than 8 MiB.
	ErrManifestTooLarge = errors.New("manifest exceeds 8 MiB")
)

const maxManifestSize = 8 << 20

// Result describes what one sync changed.
type Result struct {
	Path     string
	Manifest *dojo.Manifest
	Changed  bool // world class hash differs from the previous sync
	SyncedAt time.Time
}

// Syncer fetches the manifest from the configured source, validates it and
// stores it in the config directory.
type Syncer struct {
	cfg    *config.Config
	client *http.Client
	log    log.Logger
}

// New creates a new Syncer. A nil logger falls back to the root logger.
func New(cfg *config.Config, logger log.Logger) *Syncer {
	if logger == nil {
		logger = log.Root()
	}
	return &Syncer{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger,
	}
}

// Run downloads the manifest, points the config at the stored copy and saves
// both.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	syncCfg, err := s.cfg.LoadSync()
	if err != nil {
		return nil, fmt.Errorf("loading sync config: %w", err)
	}
	if syncCfg.Source == "" {
		return nil, ErrNoSource
	}

	data, err := s.fetch(ctx, syncCfg.Source)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}
	m, err := dojo.ParseManifest(data)
	if err != nil {
		return nil, err
	}

	path := s.cfg.SyncedManifestPath()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	s.cfg.ManifestPath = path
	if err := s.cfg.Save(); err != nil {
		return nil, err
	}

	res := &Result{
		Path:     path,
		Manifest: m,
		Changed:  syncCfg.WorldHash != m.World.ClassHash.Hex(),
		SyncedAt: time.Now().UTC(),
	}
	syncCfg.WorldHash = m.World.ClassHash.Hex()
	syncCfg.LastSynced = res.SyncedAt.Format(time.RFC3339)
	if err := s.cfg.SaveSync(syncCfg); err != nil {
		return nil, err
	}

	s.log.Debug("Manifest synced", "source", syncCfg.Source, "world", m.World.Address.Hex(), "changed", res.Changed)
	return res, nil
}

// SetSource sets the remote manifest URL.
func (s *Syncer) SetSource(url string) error {
	syncCfg, err := s.cfg.LoadSync()
	if err != nil {
		return err
	}
	syncCfg.Source = url
	return s.cfg.SaveSync(syncCfg)
}

// Watch runs Run on a ticker until ctx is cancelled, calling onSync after
// each successful run. Failures after the first run are logged and retried
// on the next tick.
func (s *Syncer) Watch(ctx context.Context, interval time.Duration, onSync func(*Result)) error {
	res, err := s.Run(ctx)
	if err != nil {
		return err
	}
	if onSync != nil {
		onSync(res)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			res, err := s.Run(ctx)
			if err != nil {
				s.log.Warn("Manifest sync failed", "err", err)
				continue
			}
			if onSync != nil {
				onSync(res)
			}
		}
	}
}

func (s *Syncer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxManifestSize {
		return nil, ErrManifestTooLarge
	}
	return data, nil
}
