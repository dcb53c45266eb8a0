package resource

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/pkg"
)

// MemoryStore is the mock data source: an ordered in-memory collection,
// seeded once and never persisted. It is safe for concurrent use.
type MemoryStore[T any, C Creator[T], U Patcher[T]] struct {
	def *Definition[T]
	now func() time.Time

	mu      sync.RWMutex
	records []T
}

// NewMemoryStore copies seed into a new store. Seed records without an id
// get max(id)+1; records without timestamps are stamped with the current time.
func NewMemoryStore[T any, C Creator[T], U Patcher[T]](def *Definition[T], seed []T) *MemoryStore[T, C, U] {
	s := &MemoryStore[T, C, U]{
		def: def,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, rec := range seed {
		m := meta(&rec)
		if m.ID == 0 {
			m.ID = s.nextID()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = s.now()
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = m.CreatedAt
		}
		s.records = append(s.records, rec)
	}
	return s
}

func (s *MemoryStore[T, C, U]) Kind() string { return KindMemory }

// Len returns the number of stored records.
func (s *MemoryStore[T, C, U]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List filters a snapshot of the store and paginates the result.
func (s *MemoryStore[T, C, U]) List(ctx context.Context, req domain.PageRequest) (*domain.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	snapshot := slices.Clone(s.records)
	s.mu.RUnlock()

	preds := s.def.predicates(req.Filters)
	matched := snapshot[:0]
	for i := range snapshot {
		if matchesAll(&snapshot[i], preds) {
			matched = append(matched, snapshot[i])
		}
	}

	if field, desc, ok := pkg.ParseSort(req.Sort); ok && s.def.Sortable(field) {
		sortRecords(matched, field, desc)
	}

	return pkg.Paginate(matched, req.Page, req.Size), nil
}

func (s *MemoryStore[T, C, U]) Get(ctx context.Context, id uint) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.NotFound(s.def.Name, id)
	}
	rec := s.records[i]
	return &rec, nil
}

func (s *MemoryStore[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := in.Build()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	m := meta(&rec)
	m.ID = s.nextID()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.records = append(s.records, rec)
	return &rec, nil
}

func (s *MemoryStore[T, C, U]) Update(ctx context.Context, id uint, in U) (*T, error) {
	return s.mutate(ctx, id, func(rec *T) error {
		in.Apply(rec)
		return nil
	})
}

func (s *MemoryStore[T, C, U]) Do(ctx context.Context, id uint, action string) (*T, error) {
	act, err := s.def.action(action)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, act)
}

func (s *MemoryStore[T, C, U]) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.NotFound(s.def.Name, id)
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

// mutate applies fn to a copy of the record and stores the copy only when fn
// succeeds. Id and createdAt cannot be changed by fn.
func (s *MemoryStore[T, C, U]) mutate(ctx context.Context, id uint, fn func(*T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.NotFound(s.def.Name, id)
	}

	rec := s.records[i]
	orig := *meta(&rec)
	if err := fn(&rec); err != nil {
		return nil, err
	}
	m := meta(&rec)
	m.ID = orig.ID
	m.CreatedAt = orig.CreatedAt
	m.UpdatedAt = s.now()
	s.records[i] = rec
	return &rec, nil
}

func (s *MemoryStore[T, C, U]) indexOf(id uint) int {
	return slices.IndexFunc(s.records, func(rec T) bool { return meta(&rec).ID == id })
}

// nextID returns max(id)+1, or 1 for an empty store. Caller holds the lock.
func (s *MemoryStore[T, C, U]) nextID() uint {
	var maxID uint
	for i := range s.records {
		maxID = max(maxID, meta(&s.records[i]).ID)
	}
	return maxID + 1
}

func matchesAll[T any](rec *T, preds []predicate[T]) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

// sortRecords orders records by field, keeping insertion order among equal
// values. Nil values sort last.
func sortRecords[T any](records []T, field string, desc bool) {
	slices.SortStableFunc(records, func(a, b T) int {
		av, _ := pkg.FieldValue(&a, field)
		bv, _ := pkg.FieldValue(&b, field)
		switch {
		case av == nil && bv == nil:
			return 0
		case av == nil:
			return 1
		case bv == nil:
			return -1
		}
		c := compareValues(pkg.FormatValue(av), pkg.FormatValue(bv))
		if desc {
			return -c
		}
		return c
	})
}
