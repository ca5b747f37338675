package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"orgvet/internal/dataset/metrics"
	"orgvet/internal/normalize"
	"orgvet/pkg/sentinel"
)

const (
	revocationCacheFile = "data-download-revocation.zip"
	sdnCacheFile        = "sdn.csv"
	altCacheFile        = "alt.csv"
)

// Config carries the store's policy knobs. Floors and ceilings are tuned to
// the real-world datasets: the revocation list runs ~600K rows, the SDN
// list ~12K entries.
type Config struct {
	DataDir string

	RevocationURL string
	SDNPrimaryURL string
	SDNAliasURL   string

	MaxAge          time.Duration
	RefreshCooldown time.Duration

	DownloadTimeout time.Duration
	DownloadCeiling int64
	ExtractCeiling  int64

	RevocationFloor int
	SanctionsFloor  int
}

// CooldownError reports a refresh rejected inside the cooldown window. No
// I/O has been performed when it is returned.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	secs := int(math.Ceil(e.Remaining.Seconds()))
	return fmt.Sprintf("refresh cooldown active, try again in %ds", secs)
}

// Store owns the two dataset generations and their disk cache. Lookups read
// the active generation through an atomic pointer and never block; refresh
// builds a replacement entirely off to the side and publishes it in a
// single swap, so a concurrent reader sees either the whole old snapshot
// or the whole new one, never a mix.
type Store struct {
	cfg     Config
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics

	rev atomic.Pointer[revocationGeneration]
	sdn atomic.Pointer[sanctionsGeneration]

	// mu guards manifest and lastRefresh; the single-writer cooldown
	// timestamp is never read on the lookup path.
	mu          sync.Mutex
	manifest    Manifest
	lastRefresh time.Time

	now func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithHTTPClient overrides the download client (tests point it at a stub
// transport).
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.client = c }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock overrides the time source for staleness and cooldown tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(cfg Config, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	s.client = &http.Client{Timeout: cfg.DownloadTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads both datasets at startup: stale (no manifest entry, or
// older than MaxAge) means download-validate-publish, fresh means parsing
// the disk cache directly. It fails only when a dataset is stale, the
// download failed, and no cached copy exists.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	m, err := loadManifest(s.cfg.DataDir)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.manifest = m
	s.mu.Unlock()

	if err := s.initDataset(ctx, SourceIRS, m.Revocation, s.refreshIRS, s.loadCachedIRS); err != nil {
		return err
	}
	return s.initDataset(ctx, SourceOFAC, m.Sanctions, s.refreshOFAC, s.loadCachedOFAC)
}

func (s *Store) initDataset(
	ctx context.Context,
	src Source,
	entry *ManifestEntry,
	refresh func(context.Context) error,
	loadCached func() error,
) error {
	stale := entry == nil || s.now().Sub(entry.DownloadedAt) > s.cfg.MaxAge
	if !stale {
		if err := loadCached(); err == nil {
			return nil
		}
		// Manifest said fresh but the cache is unusable; fall through to
		// a download as if stale.
		s.logger.Warn("cached dataset unreadable despite fresh manifest, re-downloading",
			"dataset", string(src))
	}

	err := refresh(ctx)
	if err == nil {
		return nil
	}
	s.logger.Warn("dataset download failed, falling back to disk cache",
		"dataset", string(src), "error", err)

	if lerr := loadCached(); lerr != nil {
		return fmt.Errorf("%s dataset unavailable: download failed (%v) and no usable cache: %w",
			src, err, lerr)
	}
	// Counted only once the cache actually carried the startup.
	s.metrics.IncFallback(string(src))
	return nil
}

// Refresh forces a download-validate-publish cycle for the requested
// dataset(s), bypassing the staleness check. A ≥RefreshCooldown window is
// enforced between any two refresh invocations before any I/O happens, to
// bound load on the upstream government servers.
func (s *Store) Refresh(ctx context.Context, target Source) error {
	if err := s.admitRefresh(); err != nil {
		return err
	}

	var errs []error
	if target == SourceIRS || target == SourceAll {
		if err := s.refreshIRS(ctx); err != nil {
			errs = append(errs, fmt.Errorf("irs: %w", err))
		}
	}
	if target == SourceOFAC || target == SourceAll {
		if err := s.refreshOFAC(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ofac: %w", err))
		}
	}
	return errors.Join(errs...)
}

// admitRefresh is the single writer of the cooldown timestamp.
func (s *Store) admitRefresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !s.lastRefresh.IsZero() {
		if elapsed := now.Sub(s.lastRefresh); elapsed < s.cfg.RefreshCooldown {
			return &CooldownError{Remaining: s.cfg.RefreshCooldown - elapsed}
		}
	}
	s.lastRefresh = now
	return nil
}

// LookupEIN returns the revocation row for an EIN, or nil when absent. It
// reads the active generation only: O(1), never blocks, never mutates. An
// uninitialized store simply reports no match.
func (s *Store) LookupEIN(ein string) *RevocationRow {
	key, ok := NormalizeEIN(ein)
	if !ok {
		return nil
	}
	gen := s.rev.Load()
	if gen == nil {
		return nil
	}
	return gen.byEIN[key]
}

// LookupName runs name through the normalizer and returns the SDN rows
// indexed under its canonical form, in insertion order. The index key is
// always the normalizer's output, never raw text.
func (s *Store) LookupName(name string) []*SanctionsRow {
	gen := s.sdn.Load()
	if gen == nil {
		return nil
	}
	return gen.byName[normalize.Key(name)]
}

// Status describes the active generations and manifest freshness for the
// operator surface.
type Status struct {
	Revocation *DatasetStatus `json:"revocation"`
	Sanctions  *DatasetStatus `json:"sanctions"`
}

type DatasetStatus struct {
	Loaded       bool      `json:"loaded"`
	Rows         int       `json:"rows"`
	Aliases      int       `json:"aliases,omitempty"`
	DownloadedAt time.Time `json:"downloadedAt,omitzero"`
}

func (s *Store) Status() Status {
	s.mu.Lock()
	m := s.manifest
	s.mu.Unlock()

	st := Status{Revocation: &DatasetStatus{}, Sanctions: &DatasetStatus{}}
	if gen := s.rev.Load(); gen != nil {
		st.Revocation.Loaded = true
		st.Revocation.Rows = len(gen.byEIN)
	}
	if gen := s.sdn.Load(); gen != nil {
		st.Sanctions.Loaded = true
		st.Sanctions.Rows = gen.sdnCount
		st.Sanctions.Aliases = gen.aliasCount
	}
	if m.Revocation != nil {
		st.Revocation.DownloadedAt = m.Revocation.DownloadedAt
	}
	if m.Sanctions != nil {
		st.Sanctions.DownloadedAt = m.Sanctions.DownloadedAt
	}
	return st
}

// refreshIRS runs the full cycle for the revocation list: fetch under the
// byte ceiling, extract under the zip-bomb guard, parse into a scratch
// generation, check the cardinality floor, persist the raw archive, then
// publish and update the manifest. The active generation is untouched
// until the single pointer swap.
func (s *Store) refreshIRS(ctx context.Context) error {
	start := s.now()
	raw, err := s.fetch(ctx, s.cfg.RevocationURL)
	if err != nil {
		s.metrics.IncRefresh("irs", "error")
		return err
	}
	data, err := extractZip(raw, s.cfg.ExtractCeiling)
	if err != nil {
		s.metrics.IncRefresh("irs", "error")
		return err
	}
	gen := parseRevocation(data)
	if len(gen.byEIN) < s.cfg.RevocationFloor {
		s.metrics.IncRefresh("irs", "rejected")
		return fmt.Errorf("%w: revocation list parsed to %d rows, floor is %d",
			sentinel.ErrIntegrity, len(gen.byEIN), s.cfg.RevocationFloor)
	}

	if err := writeCacheFiles(s.cfg.DataDir, cacheFile{revocationCacheFile, raw}); err != nil {
		s.metrics.IncRefresh("irs", "error")
		return err
	}
	s.rev.Store(gen)
	s.metrics.IncRefresh("irs", "ok")
	s.metrics.SetGenerationRows("irs", len(gen.byEIN))

	if err := s.updateManifest(func(m *Manifest) {
		m.Revocation = &ManifestEntry{DownloadedAt: s.now(), RowCount: len(gen.byEIN)}
	}); err != nil {
		return err
	}
	s.logger.Info("revocation dataset published",
		"rows", len(gen.byEIN),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return nil
}

// refreshOFAC mirrors refreshIRS for the two-file SDN dataset.
func (s *Store) refreshOFAC(ctx context.Context) error {
	start := s.now()
	primary, err := s.fetch(ctx, s.cfg.SDNPrimaryURL)
	if err != nil {
		s.metrics.IncRefresh("ofac", "error")
		return err
	}
	alias, err := s.fetch(ctx, s.cfg.SDNAliasURL)
	if err != nil {
		s.metrics.IncRefresh("ofac", "error")
		return err
	}
	gen := parseSanctions(primary, alias)
	if gen.sdnCount < s.cfg.SanctionsFloor {
		s.metrics.IncRefresh("ofac", "rejected")
		return fmt.Errorf("%w: sanctions list parsed to %d entries, floor is %d",
			sentinel.ErrIntegrity, gen.sdnCount, s.cfg.SanctionsFloor)
	}

	// The two files form one dataset: a later disk fallback joins aliases
	// against primaries, so they must never be replaced half-way.
	if err := writeCacheFiles(s.cfg.DataDir,
		cacheFile{sdnCacheFile, primary},
		cacheFile{altCacheFile, alias},
	); err != nil {
		s.metrics.IncRefresh("ofac", "error")
		return err
	}
	s.sdn.Store(gen)
	s.metrics.IncRefresh("ofac", "ok")
	s.metrics.SetGenerationRows("ofac", gen.sdnCount)

	if err := s.updateManifest(func(m *Manifest) {
		m.Sanctions = &ManifestEntry{
			DownloadedAt: s.now(),
			SDNCount:     gen.sdnCount,
			AliasCount:   gen.aliasCount,
		}
	}); err != nil {
		return err
	}
	s.logger.Info("sanctions dataset published",
		"entries", gen.sdnCount,
		"aliases", gen.aliasCount,
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return nil
}

// loadCachedIRS parses the on-disk archive into a generation and publishes
// it without re-running the size floor: the copy was validated when
// written. A suspiciously small row count is logged, not fatal, so silent
// corruption surfaces without blocking startup.
func (s *Store) loadCachedIRS() error {
	raw, err := os.ReadFile(filepath.Join(s.cfg.DataDir, revocationCacheFile))
	if err != nil {
		return fmt.Errorf("read cached revocation list: %w", err)
	}
	data, err := extractZip(raw, s.cfg.ExtractCeiling)
	if err != nil {
		return err
	}
	gen := parseRevocation(data)
	if len(gen.byEIN) < s.cfg.RevocationFloor {
		s.logger.Warn("cached revocation list is implausibly small",
			"rows", len(gen.byEIN), "floor", s.cfg.RevocationFloor)
	}
	s.rev.Store(gen)
	s.metrics.SetGenerationRows("irs", len(gen.byEIN))
	s.logger.Info("revocation dataset loaded from cache", "rows", len(gen.byEIN))
	return nil
}

func (s *Store) loadCachedOFAC() error {
	primary, err := os.ReadFile(filepath.Join(s.cfg.DataDir, sdnCacheFile))
	if err != nil {
		return fmt.Errorf("read cached sdn list: %w", err)
	}
	alias, err := os.ReadFile(filepath.Join(s.cfg.DataDir, altCacheFile))
	if err != nil {
		return fmt.Errorf("read cached alias list: %w", err)
	}
	gen := parseSanctions(primary, alias)
	if gen.sdnCount < s.cfg.SanctionsFloor {
		s.logger.Warn("cached sanctions list is implausibly small",
			"entries", gen.sdnCount, "floor", s.cfg.SanctionsFloor)
	}
	s.sdn.Store(gen)
	s.metrics.SetGenerationRows("ofac", gen.sdnCount)
	s.logger.Info("sanctions dataset loaded from cache",
		"entries", gen.sdnCount, "aliases", gen.aliasCount)
	return nil
}

func (s *Store) updateManifest(mutate func(*Manifest)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.manifest)
	return saveManifest(s.cfg.DataDir, s.manifest)
}

type cacheFile struct {
	name string
	raw  []byte
}

// writeCacheFiles stages every file to a temporary path and starts
// renaming only after all writes have succeeded, so files that belong to
// the same dataset are never replaced half-way.
func writeCacheFiles(dir string, files ...cacheFile) error {
	tmps := make([]string, 0, len(files))
	for _, f := range files {
		tmp := filepath.Join(dir, f.name+".tmp")
		if err := os.WriteFile(tmp, f.raw, 0o644); err != nil {
			for _, staged := range tmps {
				_ = os.Remove(staged)
			}
			return fmt.Errorf("write cache %s: %w", f.name, err)
		}
		tmps = append(tmps, tmp)
	}
	for i, f := range files {
		if err := os.Rename(tmps[i], filepath.Join(dir, f.name)); err != nil {
			return fmt.Errorf("replace cache %s: %w", f.name, err)
		}
	}
	return nil
}
