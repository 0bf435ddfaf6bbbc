package reporter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/solgrid-labs/siterank/internal/events"
	"github.com/solgrid-labs/siterank/internal/store"
)

type stubStore struct {
	stats store.EvaluationStats
}

func (s *stubStore) CreateEvaluation(context.Context, *store.Evaluation) error { return nil }
func (s *stubStore) GetEvaluation(context.Context, uuid.UUID) (*store.Evaluation, error) {
	return nil, nil
}
func (s *stubStore) ListEvaluations(context.Context, store.EvaluationFilter) ([]*store.Evaluation, error) {
	return nil, nil
}
func (s *stubStore) GetStats(context.Context) (*store.EvaluationStats, error) {
	stats := s.stats
	return &stats, nil
}
func (s *stubStore) Close() error { return nil }

type recordingEvents struct {
	mu            sync.Mutex
	published     []events.StatsEvent
	subscriptions map[string]func(string, []byte)
}

func (r *recordingEvents) Publish(subject string, data interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev, ok := data.(events.StatsEvent); ok {
		r.published = append(r.published, ev)
	}
	return nil
}
func (r *recordingEvents) Subscribe(subject string, handler func(string, []byte)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subscriptions == nil {
		r.subscriptions = make(map[string]func(string, []byte))
	}
	r.subscriptions[subject] = handler
	return nil
}
func (r *recordingEvents) Close() {}

func (r *recordingEvents) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.published)
}

func (r *recordingEvents) last() events.StatsEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.published[len(r.published)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReporterPublishesStats(t *testing.T) {
	ss := &stubStore{stats: store.EvaluationStats{
		Total:        7,
		AvgScore:     0.61,
		Inconsistent: 2,
		ByCategory:   map[string]int{"moderately_suitable": 5, "marginally_suitable": 2},
	}}
	re := &recordingEvents{}

	r := New(ss, re, 10*time.Millisecond, testLogger())
	r.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for re.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no stats event published within deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}
	r.Stop()

	ev := re.last()
	if ev.Total != 7 {
		t.Errorf("total = %d, want 7", ev.Total)
	}
	if ev.AvgScore != 0.61 {
		t.Errorf("avg_score = %f, want 0.61", ev.AvgScore)
	}
	if ev.Inconsistent != 2 {
		t.Errorf("inconsistent = %d, want 2", ev.Inconsistent)
	}
	if ev.ByCategory["moderately_suitable"] != 5 {
		t.Errorf("by_category = %v", ev.ByCategory)
	}
}

func TestReporterStopIsIdempotent(t *testing.T) {
	r := New(&stubStore{}, nil, time.Hour, testLogger())
	r.Start(context.Background())
	r.Stop()
	r.Stop()
}

func TestReporterStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(&stubStore{}, nil, time.Hour, testLogger())
	r.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reporter loop did not exit after context cancel")
	}
}

func TestReporterHandlesNilEvents(t *testing.T) {
	r := New(&stubStore{stats: store.EvaluationStats{Total: 1}}, nil, time.Hour, testLogger())
	r.publishStats(context.Background())
	r.SetupSubscriptions()
}

func TestSetupSubscriptionsListensForInconsistencies(t *testing.T) {
	re := &recordingEvents{}
	r := New(&stubStore{}, re, time.Hour, testLogger())
	r.SetupSubscriptions()

	handler, ok := re.subscriptions[events.SubjectInconsistentAll]
	if !ok {
		t.Fatalf("no subscription on %s, got %v", events.SubjectInconsistentAll, re.subscriptions)
	}

	// Both a well-formed advisory and garbage must be absorbed without panic.
	payload, err := json.Marshal(events.EvaluationInconsistentEvent{
		EvaluationID:     "e1",
		ConsistencyRatio: 0.19,
		Limit:            0.10,
	})
	if err != nil {
		t.Fatalf("marshal advisory: %v", err)
	}
	handler("sites.evaluation.e1.inconsistent", payload)
	handler("sites.evaluation.e2.inconsistent", []byte("not json"))
}
