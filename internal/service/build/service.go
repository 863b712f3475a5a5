package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/you-humble/pc-builder/internal/converter"
	"github.com/you-humble/pc-builder/internal/model"
	"github.com/you-humble/pc-builder/internal/service/evaluator"
	"github.com/you-humble/pc-builder/platform/logger"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

type SnapshotWriter interface {
	Save(key, value string) error
	Delete(key string) error
	Flush(ctx context.Context) error
}

// service owns the selected components of one build. In-memory state is
// the source of truth for the session; storage is read once by Load and
// written in the background after every mutation.
type service struct {
	repo          Repository
	writer        SnapshotWriter
	readDBTimeout time.Duration
	sessionID     string

	mu      sync.RWMutex
	build   model.Build
	loading bool
	// set by the first mutation; a load that resolves later is discarded
	dirty bool

	ready     chan struct{}
	readyOnce sync.Once
}

func NewBuildService(
	repo Repository,
	writer SnapshotWriter,
	readDBTimeout time.Duration,
) *service {
	return &service{
		repo:          repo,
		writer:        writer,
		readDBTimeout: readDBTimeout,
		sessionID:     uuid.NewString(),
		build:         model.NewBuild(),
		loading:       true,
		ready:         make(chan struct{}),
	}
}

// Load restores the saved build. Missing, unreadable or corrupt data
// leaves the empty build in place; nothing is returned to the caller.
func (s *service) Load(ctx context.Context) {
	log := logger.With(
		logger.String("session_id", s.sessionID),
		logger.String("key", model.BuildStorageKey),
	)
	defer s.markReady()

	if s.readDBTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readDBTimeout)
		defer cancel()
	}

	raw, found, err := s.repo.Get(ctx, model.BuildStorageKey)
	if err != nil {
		log.Error(ctx, "repository get build", logger.ErrorF(err))
		return
	}
	if !found {
		log.Debug(ctx, "no saved build")
		return
	}

	var b model.Build
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		log.Error(ctx, "decode saved build", logger.ErrorF(err))
		return
	}
	if b == nil {
		b = model.NewBuild()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		log.Warn(ctx, "build changed while loading, saved build discarded")
		return
	}
	s.build = b
	log.Info(ctx, "build restored", logger.Int("components", s.countLocked()))
}

// LoadAsync runs Load in the background; use Ready or IsLoading to wait.
func (s *service) LoadAsync(ctx context.Context) {
	go s.Load(ctx)
}

func (s *service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Ready is closed once the initial load attempt has resolved.
func (s *service) Ready() <-chan struct{} { return s.ready }

func (s *service) SelectedComponents() model.Build {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.build.Clone()
}

// SetComponent replaces the record in slot. The record is not checked
// against the slot's category.
func (s *service) SetComponent(ctx context.Context, slot model.Slot, rec model.Record) error {
	const op = "build.service.SetComponent"

	if !slot.Valid() {
		return fmt.Errorf("%s: %w: %q", op, model.ErrUnknownSlot, slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.build[slot] = rec.Clone()
	s.dirty = true
	s.saveLocked(ctx)

	return nil
}

func (s *service) ClearComponent(ctx context.Context, slot model.Slot) error {
	const op = "build.service.ClearComponent"

	if !slot.Valid() {
		return fmt.Errorf("%s: %w: %q", op, model.ErrUnknownSlot, slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.build[slot] = nil
	s.dirty = true
	s.saveLocked(ctx)

	return nil
}

// Reset empties every slot and deletes the saved copy instead of writing
// an empty build.
func (s *service) Reset(ctx context.Context) {
	log := logger.With(logger.String("session_id", s.sessionID))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.build = model.NewBuild()
	s.dirty = true

	if err := s.writer.Delete(model.BuildStorageKey); err != nil {
		log.Error(ctx, "enqueue build delete", logger.ErrorF(err))
	}
}

func (s *service) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return evaluator.TotalPrice(s.build)
}

func (s *service) TotalPower() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return evaluator.TotalPower(converter.PartsFromBuild(s.build))
}

func (s *service) CheckCompatibility() model.CompatibilityReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return evaluator.CheckCompatibility(converter.PartsFromBuild(s.build))
}

func (s *service) PerformanceScore() model.PerformanceAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return evaluator.PerformanceScore(converter.PartsFromBuild(s.build))
}

// Flush waits for queued writes; regular callers never need it.
func (s *service) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

// saveLocked enqueues the whole build under the single build key. Callers
// hold s.mu, so snapshots are enqueued in mutation order.
func (s *service) saveLocked(ctx context.Context) {
	log := logger.With(logger.String("session_id", s.sessionID))

	payload, err := json.Marshal(s.build)
	if err != nil {
		log.Error(ctx, "encode build", logger.ErrorF(err))
		return
	}

	if err := s.writer.Save(model.BuildStorageKey, string(payload)); err != nil {
		log.Error(ctx, "enqueue build save", logger.ErrorF(err))
	}
}

func (s *service) countLocked() int {
	n := 0
	for _, rec := range s.build {
		if rec != nil {
			n++
		}
	}
	return n
}

func (s *service) markReady() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	})
}
