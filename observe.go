package golistview

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// FetchInfo identifies a single fetch attempt in Hook events.
type FetchInfo struct {
	// RequestID is unique per fetch attempt.
	RequestID string
	// Refresh is true for refresh fetches, false for initial/load-more fetches.
	Refresh bool
}

// Hook is the observability sink injected into a Controller at construction.
// The controller emits every noteworthy event through it instead of logging
// globally. Implementations must be safe for concurrent use and must not call
// back into the controller from inside an event.
type Hook interface {
	// FetchStarted fires immediately before a LoadPage call.
	FetchStarted(info FetchInfo)
	// FetchSucceeded fires after a LoadPage call returns without error.
	FetchSucceeded(info FetchInfo, itemCount int, endList bool, elapsed time.Duration)
	// FetchFailed fires after a LoadPage call returns an error.
	FetchFailed(info FetchInfo, cause error, elapsed time.Duration)
	// StateChanged fires once per state transition, after the transition applies.
	StateChanged(from StateKind, to StateKind)
	// LoadMoreDropped fires when a load-more dispatch is silently dropped by the
	// in-flight gate.
	LoadMoreDropped()
}

func newFetchInfo(refresh bool) FetchInfo {
	return FetchInfo{
		RequestID: uuid.New().String(),
		Refresh:   refresh,
	}
}

// NopHook discards every event. It is the default hook.
type NopHook struct{}

// FetchStarted - implements Hook.
func (NopHook) FetchStarted(FetchInfo) {}

// FetchSucceeded - implements Hook.
func (NopHook) FetchSucceeded(FetchInfo, int, bool, time.Duration) {}

// FetchFailed - implements Hook.
func (NopHook) FetchFailed(FetchInfo, error, time.Duration) {}

// StateChanged - implements Hook.
func (NopHook) StateChanged(StateKind, StateKind) {}

// LoadMoreDropped - implements Hook.
func (NopHook) LoadMoreDropped() {}

// ZerologHook emits structured log events through an injected zerolog.Logger.
type ZerologHook struct {
	logger zerolog.Logger
}

// NewZerologHook wraps logger, tagging every event with the component name.
func NewZerologHook(logger zerolog.Logger) *ZerologHook {
	return &ZerologHook{
		logger: logger.With().Str("component", "golistview").Logger(),
	}
}

// FetchStarted - implements Hook.
func (h *ZerologHook) FetchStarted(info FetchInfo) {
	h.logger.Debug().
		Str("request_id", info.RequestID).
		Bool("refresh", info.Refresh).
		Msg("Fetch started")
}

// FetchSucceeded - implements Hook.
func (h *ZerologHook) FetchSucceeded(info FetchInfo, itemCount int, endList bool, elapsed time.Duration) {
	h.logger.Debug().
		Str("request_id", info.RequestID).
		Bool("refresh", info.Refresh).
		Int("items", itemCount).
		Bool("end_list", endList).
		Dur("duration", elapsed).
		Msg("Fetch succeeded")
}

// FetchFailed - implements Hook.
func (h *ZerologHook) FetchFailed(info FetchInfo, cause error, elapsed time.Duration) {
	h.logger.Warn().
		Str("request_id", info.RequestID).
		Bool("refresh", info.Refresh).
		Dur("duration", elapsed).
		Err(cause).
		Msg("Fetch failed")
}

// StateChanged - implements Hook.
func (h *ZerologHook) StateChanged(from StateKind, to StateKind) {
	h.logger.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("State changed")
}

// LoadMoreDropped - implements Hook.
func (h *ZerologHook) LoadMoreDropped() {
	h.logger.Debug().Msg("Load-more dropped by in-flight gate")
}

// Prometheus metrics for list controller operations.
var (
	listFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listview_fetches_total",
		Help: "Total page fetches by mode and outcome",
	}, []string{"mode", "outcome"})

	listFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "listview_fetch_duration_seconds",
		Help:    "Page fetch duration in seconds by mode",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"mode"})

	listStateTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listview_state_transitions_total",
		Help: "State transitions by source and target kind",
	}, []string{"from", "to"})

	listLoadMoreDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listview_load_more_dropped_total",
		Help: "Load-more dispatches dropped by the in-flight gate",
	})
)

// PromHook exports controller events as Prometheus metrics on the default
// registry.
type PromHook struct{}

// NewPromHook returns a PromHook.
func NewPromHook() *PromHook {
	return &PromHook{}
}

func fetchMode(refresh bool) string {
	if refresh {
		return "refresh"
	}

	return "page"
}

// FetchStarted - implements Hook.
func (*PromHook) FetchStarted(FetchInfo) {}

// FetchSucceeded - implements Hook.
func (*PromHook) FetchSucceeded(info FetchInfo, _ int, _ bool, elapsed time.Duration) {
	mode := fetchMode(info.Refresh)
	listFetchesTotal.WithLabelValues(mode, "ok").Inc()
	listFetchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// FetchFailed - implements Hook.
func (*PromHook) FetchFailed(info FetchInfo, _ error, elapsed time.Duration) {
	mode := fetchMode(info.Refresh)
	listFetchesTotal.WithLabelValues(mode, "error").Inc()
	listFetchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// StateChanged - implements Hook.
func (*PromHook) StateChanged(from StateKind, to StateKind) {
	listStateTransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
}

// LoadMoreDropped - implements Hook.
func (*PromHook) LoadMoreDropped() {
	listLoadMoreDroppedTotal.Inc()
}

// MultiHook fans every event out to each wrapped hook in order.
func MultiHook(hooks ...Hook) Hook {
	return multiHook(hooks)
}

type multiHook []Hook

// FetchStarted - implements Hook.
func (m multiHook) FetchStarted(info FetchInfo) {
	for _, h := range m {
		h.FetchStarted(info)
	}
}

// FetchSucceeded - implements Hook.
func (m multiHook) FetchSucceeded(info FetchInfo, itemCount int, endList bool, elapsed time.Duration) {
	for _, h := range m {
		h.FetchSucceeded(info, itemCount, endList, elapsed)
	}
}

// FetchFailed - implements Hook.
func (m multiHook) FetchFailed(info FetchInfo, cause error, elapsed time.Duration) {
	for _, h := range m {
		h.FetchFailed(info, cause, elapsed)
	}
}

// StateChanged - implements Hook.
func (m multiHook) StateChanged(from StateKind, to StateKind) {
	for _, h := range m {
		h.StateChanged(from, to)
	}
}

// LoadMoreDropped - implements Hook.
func (m multiHook) LoadMoreDropped() {
	for _, h := range m {
		h.LoadMoreDropped()
	}
}

var (
	_ Hook = NopHook{}
	_ Hook = (*ZerologHook)(nil)
	_ Hook = (*PromHook)(nil)
	_ Hook = multiHook(nil)
)
