package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/monthly"
	"github.com/wonny/twdiff/internal/resolver"
	"github.com/wonny/twdiff/pkg/logger"
)

// Resolver is the data-fetching side the pipeline needs
type Resolver interface {
	Resolve(ctx context.Context, code string) (contracts.Resolution, error)
	LivePrice(ctx context.Context, symbol string) (contracts.Quote, error)
}

// Service builds reports
// ⭐ SSOT: 요청 단위 순수 함수 (code → Report), 공유 상태 없음
type Service struct {
	resolver Resolver
	logger   *logger.Logger
	timeout  time.Duration // 0 = bounded only by the caller's context
	now      func() time.Time
}

// NewService creates a report service
func NewService(r Resolver, log *logger.Logger) *Service {
	return &Service{
		resolver: r,
		logger:   log,
		now:      time.Now,
	}
}

// WithTimeout bounds every Run to d, provider retries included
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Timeout returns the per-query deadline
func (s *Service) Timeout() time.Duration {
	return s.timeout
}

// Run executes the pipeline for rawCode.
// Every failure is terminal for this query and is reported through Status and Banners.
func (s *Service) Run(ctx context.Context, rawCode string) Report {
	start := s.now()
	log := logger.FromContext(ctx, s.logger).WithField("input", rawCode)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rep := Report{GeneratedAt: start.UTC()}

	// 1. validate
	code, err := resolver.ValidateCode(rawCode)
	if err != nil {
		log.WithField("stage", contracts.StageValidate).Info("Rejected stock code")
		rep.Code = rawCode
		rep.Status = StatusInvalidInput
		rep.addBanner(contracts.Warning(msgInvalidInput))
		return rep
	}
	rep.Code = code

	// 2. resolve
	res, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		log.WithError(err).WithField("stage", contracts.StageResolve).Error("Failed to resolve stock code")
		rep.Status = StatusUpstreamError
		rep.addBanner(contracts.Error(upstreamMessage(err)))
		return rep
	}
	if !res.Found() {
		log.WithField("stage", contracts.StageResolve).Info("Stock code not found")
		rep.Status = StatusNotFound
		rep.addBanner(contracts.Error(fmt.Sprintf(msgNotFound, code)))
		return rep
	}
	rep.Symbol = res.Symbol
	rep.Bars = res.Bars

	// 3. quote (non-fatal)
	quote, err := s.resolver.LivePrice(ctx, res.Symbol)
	if err != nil {
		log.WithError(err).WithField("stage", contracts.StageQuote).Warn("Live price unavailable")
		rep.addBanner(contracts.Warning(msgNoLivePrice))
	} else {
		rep.LivePrice = &quote
	}

	// 4. aggregate
	summaries := monthly.Summarize(res.Bars)
	matrix := monthly.Pivot(summaries)
	total := matrix.Total()

	rep.Status = StatusOK
	rep.Months = summaries
	rep.Matrix = &matrix
	rep.Total = &total
	rep.addBanner(contracts.Success(fmt.Sprintf(msgFound, res.Symbol)))

	log.WithFields(map[string]interface{}{
		"stage":    contracts.StageAggregate,
		"symbol":   res.Symbol,
		"bars":     len(res.Bars),
		"months":   len(summaries),
		"years":    len(matrix.Rows),
		"duration": s.now().Sub(start).String(),
	}).Info("Report built")

	return rep
}

func upstreamMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return msgUpstream + " (timed out)"
	}
	return msgUpstream
}
