package reporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/solgrid-labs/siterank/internal/events"
	"github.com/solgrid-labs/siterank/internal/store"
)

// Reporter periodically reads evaluation aggregates from the store and
// publishes them on the stats subject. It keeps the bus warm for dashboards
// without putting any aggregation in the request path.
type Reporter struct {
	store    store.Store
	events   events.Client
	interval time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, e events.Client, interval time.Duration, logger *slog.Logger) *Reporter {
	return &Reporter{
		store:    s,
		events:   e,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (r *Reporter) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

// SetupSubscriptions registers bus subscriptions for bookkeeping events.
// Inconsistency advisories from any instance end up in this instance's log,
// so operators see them without tailing the bus.
func (r *Reporter) SetupSubscriptions() {
	if r.events == nil {
		return
	}

	_ = r.events.Subscribe(events.SubjectInconsistentAll, func(_ string, data []byte) {
		var ev events.EvaluationInconsistentEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			r.logger.Warn("invalid inconsistency event", "error", err)
			return
		}
		r.logger.Warn("inconsistent evaluation observed",
			"evaluation_id", ev.EvaluationID,
			"consistency_ratio", ev.ConsistencyRatio,
			"limit", ev.Limit,
		)
	})
}

func (r *Reporter) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.publishStats(ctx)
		}
	}
}

func (r *Reporter) publishStats(ctx context.Context) {
	stats, err := r.store.GetStats(ctx)
	if err != nil {
		r.logger.Error("failed to read evaluation stats", "error", err)
		return
	}

	r.logger.Info("evaluation stats",
		"total", stats.Total,
		"avg_score", stats.AvgScore,
		"inconsistent", stats.Inconsistent,
	)

	if r.events == nil {
		return
	}
	err = r.events.Publish(events.SubjectStats, events.StatsEvent{
		Total:        stats.Total,
		AvgScore:     stats.AvgScore,
		Inconsistent: stats.Inconsistent,
		ByCategory:   stats.ByCategory,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		r.logger.Warn("failed to publish stats event", "error", err)
	}
}
