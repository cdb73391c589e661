package quest

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	quests    map[string]Quest
	lastOrder int
	now       func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		quests: make(map[string]Quest),
		now:    time.Now,
	}
}

func (r *MemoryRepo) Seed(ctx context.Context, quests []Quest) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, q := range quests {
		upsert(r.quests, &r.lastOrder, q, now)
	}
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Quest, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Quest, 0, len(r.quests))
	for _, q := range r.quests {
		out = append(out, q.Clone())
	}
	sortByOrder(out)
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Quest, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quests[id]
	if !ok {
		return Quest{}, ErrNotFound
	}
	return q.Clone(), nil
}

func (r *MemoryRepo) InsertOrUpdate(ctx context.Context, q Quest) (Quest, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	return upsert(r.quests, &r.lastOrder, q, r.now()), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quests[id]; !ok {
		return ErrNotFound
	}
	delete(r.quests, id)
	return nil
}
