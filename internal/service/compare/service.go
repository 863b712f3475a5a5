package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/pc-builder/internal/converter"
	"github.com/you-humble/pc-builder/internal/model"
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

// service keeps a short list of products of a single category for side
// by side comparison. Persistence follows the build engine: load once,
// write the full list in the background after each change.
type service struct {
	repo          Repository
	writer        SnapshotWriter
	readDBTimeout time.Duration

	mu    sync.RWMutex
	items []model.CompareItem
	dirty bool
}

func NewCompareService(
	repo Repository,
	writer SnapshotWriter,
	readDBTimeout time.Duration,
) *service {
	return &service{
		repo:          repo,
		writer:        writer,
		readDBTimeout: readDBTimeout,
		items:         []model.CompareItem{},
	}
}

func (s *service) Load(ctx context.Context) {
	log := logger.With(logger.String("key", model.CompareStorageKey))

	if s.readDBTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readDBTimeout)
		defer cancel()
	}

	raw, found, err := s.repo.Get(ctx, model.CompareStorageKey)
	if err != nil {
		log.Error(ctx, "repository get compare list", logger.ErrorF(err))
		return
	}
	if !found {
		return
	}

	var items []model.CompareItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Error(ctx, "decode saved compare list", logger.ErrorF(err))
		return
	}
	items = sanitize(items)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		log.Warn(ctx, "compare list changed while loading, saved list discarded")
		return
	}
	s.items = items
}

// Add appends rec to the list. All entries share the category of the
// first one, and the list holds at most model.MaxCompareItems entries.
func (s *service) Add(ctx context.Context, category model.Slot, rec model.Record) error {
	const op = "compare.service.Add"

	if !category.Valid() {
		return fmt.Errorf("%s: %w: %q", op, model.ErrUnknownSlot, category)
	}

	id := converter.RecordID(rec)
	if id == "" {
		return fmt.Errorf("%s: %w", op, model.ErrRecordWithoutID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) > 0 && s.items[0].Category != category {
		return fmt.Errorf("%s: %w: list holds %s", op, model.ErrCompareCategoryMismatch, s.items[0].Category)
	}
	if s.containsLocked(id) {
		return fmt.Errorf("%s: %w: %s", op, model.ErrCompareDuplicate, id)
	}
	if len(s.items) >= model.MaxCompareItems {
		return fmt.Errorf("%s: %w", op, model.ErrCompareFull)
	}

	s.items = append(s.items, model.CompareItem{ID: id, Category: category, Record: rec.Clone()})
	s.dirty = true
	s.saveLocked(ctx)

	return nil
}

// Remove drops the product with id; unknown ids are ignored.
func (s *service) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.containsLocked(id) {
		return
	}

	s.items = lo.Reject(s.items, func(it model.CompareItem, _ int) bool {
		return it.ID == id
	})
	s.dirty = true
	s.saveLocked(ctx)
}

// Clear empties the list and deletes the saved copy.
func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []model.CompareItem{}
	s.dirty = true

	if err := s.writer.Delete(model.CompareStorageKey); err != nil {
		logger.Error(ctx, "enqueue compare list delete", logger.ErrorF(err))
	}
}

func (s *service) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsLocked(id)
}

// Category returns the category shared by the list, if it is not empty.
func (s *service) Category() (model.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return "", false
	}
	return s.items[0].Category, true
}

func (s *service) CanAddMore() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) < model.MaxCompareItems
}

func (s *service) Items() []model.CompareItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.items, func(it model.CompareItem, _ int) model.CompareItem {
		it.Record = it.Record.Clone()
		return it
	})
}

func (s *service) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

func (s *service) containsLocked(id string) bool {
	return lo.ContainsBy(s.items, func(it model.CompareItem) bool {
		return it.ID == id
	})
}

func (s *service) saveLocked(ctx context.Context) {
	payload, err := json.Marshal(s.items)
	if err != nil {
		logger.Error(ctx, "encode compare list", logger.ErrorF(err))
		return
	}

	if err := s.writer.Save(model.CompareStorageKey, string(payload)); err != nil {
		logger.Error(ctx, "enqueue compare list save", logger.ErrorF(err))
	}
}

// sanitize drops entries that break the list invariants: unknown or mixed
// categories, duplicates, and anything past the size limit.
func sanitize(items []model.CompareItem) []model.CompareItem {
	out := make([]model.CompareItem, 0, len(items))
	for _, it := range items {
		if !it.Category.Valid() || it.ID == "" {
			continue
		}
		if len(out) > 0 && out[0].Category != it.Category {
			continue
		}
		if lo.ContainsBy(out, func(o model.CompareItem) bool { return o.ID == it.ID }) {
			continue
		}
		out = append(out, it)
		if len(out) == model.MaxCompareItems {
			break
		}
	}
	return out
}
