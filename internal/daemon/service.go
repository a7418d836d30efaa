// Package daemon provides the long-running background cash flow monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/engine"
	"github.com/tkellman/cashsim/internal/pipeline"
	"github.com/tkellman/cashsim/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	User         string
	WindowDays   int
	UseCache     bool
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact projection state for status/event payloads.
type Snapshot struct {
	At             time.Time       `json:"at"`
	User           string          `json:"user"`
	WindowDays     int             `json:"window_days"`
	EndBalance     decimal.Decimal `json:"end_balance"`
	MinBalance     decimal.Decimal `json:"min_balance"`
	AlertDays      int             `json:"alert_days"`
	FirstAlertDate string          `json:"first_alert_date,omitempty"`
	TransferCount  int             `json:"transfer_count"`
	TransferTotal  decimal.Decimal `json:"transfer_total"`
	NextTransfer   string          `json:"next_transfer_date,omitempty"`
	NextAmount     decimal.Decimal `json:"next_transfer_amount"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	EndBalance    decimal.Decimal `json:"end_balance"`
	AlertDays     int             `json:"alert_days"`
	TransferCount int             `json:"transfer_count"`
	TransferTotal decimal.Decimal `json:"transfer_total"`
}

func (d Delta) isZero() bool {
	return d.AlertDays == 0 &&
		d.TransferCount == 0 &&
		d.EndBalance.IsZero() &&
		d.TransferTotal.IsZero()
}

// Event is emitted whenever the projection snapshot updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	User            string    `json:"user"`
	WindowDays      int       `json:"window_days"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 60
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	snap, err := s.project()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		log.Printf("cashsim daemon poll error: %v", err)
		return
	}

	var (
		ev      Event
		publish bool
	)

	now := snap.At
	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "projection_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

// project re-runs the simulation against the current ledger state.
func (s *Service) project() (Snapshot, error) {
	data, err := s.loadData()
	if err != nil {
		return Snapshot{}, err
	}

	current, target, err := data.Profile.ParseBalances()
	if err != nil {
		return Snapshot{}, err
	}

	now := time.Now()
	result, err := engine.Simulate(current, target,
		pipeline.ForecastOnly(data.Transactions), engine.DateOnly(now), s.cfg.WindowDays)
	if err != nil {
		return Snapshot{}, err
	}

	return snapshotFromResult(result, s.cfg, now), nil
}

func (s *Service) loadData() (*pipeline.LoadResult, error) {
	if s.cfg.UseCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			defer func() { _ = cache.Close() }()
			cr, loadErr := pipeline.LoadWithCache(s.cfg.DataDir, s.cfg.User, cache)
			if loadErr == nil {
				return &cr.LoadResult, nil
			}
		}
	}

	return pipeline.Load(s.cfg.DataDir, s.cfg.User)
}

func snapshotFromResult(result *engine.SimulationResult, cfg Config, at time.Time) Snapshot {
	snap := Snapshot{
		At:            at,
		User:          cfg.User,
		WindowDays:    cfg.WindowDays,
		TransferCount: len(result.Transfers),
		TransferTotal: result.TotalTransferred(),
	}

	for i, d := range result.Days {
		if i == 0 || d.EndBalance.LessThan(snap.MinBalance) {
			snap.MinBalance = d.EndBalance
		}
		snap.EndBalance = d.EndBalance
	}

	alerts := result.AlertDays()
	snap.AlertDays = len(alerts)
	if len(alerts) > 0 {
		snap.FirstAlertDate = alerts[0].Date.Format("2006-01-02")
	}

	if len(result.Transfers) > 0 {
		next := result.Transfers[0]
		snap.NextTransfer = next.Date.Format("2006-01-02")
		snap.NextAmount = next.Amount
	}

	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		EndBalance:    curr.EndBalance.Sub(prev.EndBalance),
		AlertDays:     curr.AlertDays - prev.AlertDays,
		TransferCount: curr.TransferCount - prev.TransferCount,
		TransferTotal: curr.TransferTotal.Sub(prev.TransferTotal),
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DataDir:         s.cfg.DataDir,
		User:            s.cfg.User,
		WindowDays:      s.cfg.WindowDays,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
