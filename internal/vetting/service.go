package vetting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"orgvet/internal/audit"
	"orgvet/internal/litigation"
	"orgvet/internal/screening"
	"orgvet/internal/vetting/metrics"
	"orgvet/pkg/requestcontext"
)

const defaultLookbackYears = 5

// LitigationSearcher is the slice of the litigation collaborator the
// orchestrator needs.
type LitigationSearcher interface {
	SearchByOrgName(ctx context.Context, name string, lookbackYears int) (litigation.Result, error)
}

// Service runs the three checks for one organization and composes the
// final report. The store-backed matchers are synchronous; the litigation
// search goes out over the network and runs concurrently with them. A
// litigation failure degrades that source to unchecked rather than failing
// the whole vet.
type Service struct {
	revocation *screening.RevocationMatcher
	sanctions  *screening.SanctionsMatcher
	litigation LitigationSearcher
	auditor    *audit.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(
	revocation *screening.RevocationMatcher,
	sanctions *screening.SanctionsMatcher,
	lit LitigationSearcher,
	auditor *audit.Publisher,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		revocation: revocation,
		sanctions:  sanctions,
		litigation: lit,
		auditor:    auditor,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Vet checks one organization against the three watchlists.
func (s *Service) Vet(ctx context.Context, req Request) (*Report, error) {
	name := strings.TrimSpace(req.OrgName)
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	lookback := req.LookbackYears
	if lookback <= 0 {
		lookback = defaultLookbackYears
	}
	start := s.now()

	var litResult *litigation.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.litigation.SearchByOrgName(gctx, name, lookback)
		if err != nil {
			s.logger.WarnContext(ctx, "litigation search failed, reporting source unchecked",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			s.metrics.IncLitigationFailure()
			return nil
		}
		litResult = &result
		return nil
	})

	sourcesChecked := 1 // sanctions always runs
	var revResult *screening.RevocationResult
	if strings.TrimSpace(req.EIN) != "" {
		r := s.revocation.Check(req.EIN)
		revResult = &r
		sourcesChecked++
	}
	sancResult := s.sanctions.Check(name)

	// The group never returns an error; Wait only fences the goroutine.
	_ = g.Wait()
	if litResult != nil {
		sourcesChecked++
	}

	flags := Aggregate(revResult, &sancResult, litResult)
	rec := Recommend(flags)

	report := &Report{
		ID:             uuid.NewString(),
		OrgName:        name,
		EIN:            req.EIN,
		Revocation:     revResult,
		Sanctions:      sancResult,
		Litigation:     litResult,
		Flags:          flags,
		Recommendation: rec,
		Summary:        Summarize(flags, rec, sourcesChecked),
		CheckedAt:      start,
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		Timestamp:      start,
		RequestID:      requestcontext.RequestID(ctx),
		OrgName:        name,
		EIN:            req.EIN,
		Recommendation: string(rec),
		FlagCount:      len(flags),
		SourcesChecked: sourcesChecked,
	}); err != nil {
		// The determination is legally sensitive: if it cannot be
		// audited it must not be returned.
		return nil, fmt.Errorf("audit vetting determination: %w", err)
	}

	s.metrics.IncRecommendation(string(rec))
	s.metrics.ObserveVetLatency(s.now().Sub(start))
	return report, nil
}
