package quest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileState struct {
	LastOrder int              `json:"lastOrder"`
	Quests    map[string]Quest `json:"quests"`
}

func newFileState() fileState {
	return fileState{Quests: map[string]Quest{}}
}

func (s fileState) clone() fileState {
	next := fileState{LastOrder: s.LastOrder, Quests: make(map[string]Quest, len(s.Quests))}
	for id, q := range s.Quests {
		next.Quests[id] = q
	}
	return next
}

// FileRepo is a persistent quest repository backed by a single JSON document.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
	now  func() time.Time
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "quests.json"),
		s:    newFileState(),
		now:  time.Now,
	}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("load %s: %w", r.path, err)
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = newFileState()
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Quests == nil {
		loaded.Quests = map[string]Quest{}
	}
	for id, q := range loaded.Quests {
		normalizeQuest(&q)
		q.ID = id
		if q.Order > loaded.LastOrder {
			loaded.LastOrder = q.Order
		}
		loaded.Quests[id] = q
	}
	r.s = loaded
	return nil
}

// commitLocked writes next to a temp file, renames it into place and only
// then makes it the in-memory state.
func (r *FileRepo) commitLocked(next fileState) error {
	b, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return err
	}
	r.s = next
	return nil
}

func (r *FileRepo) Seed(ctx context.Context, quests []Quest) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.s.clone()
	now := r.now()
	for _, q := range quests {
		upsert(next.Quests, &next.LastOrder, q, now)
	}
	return r.commitLocked(next)
}

func (r *FileRepo) List(ctx context.Context) ([]Quest, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Quest, 0, len(r.s.Quests))
	for _, q := range r.s.Quests {
		out = append(out, q.Clone())
	}
	sortByOrder(out)
	return out, nil
}

func (r *FileRepo) Get(ctx context.Context, id string) (Quest, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.s.Quests[id]
	if !ok {
		return Quest{}, ErrNotFound
	}
	return q.Clone(), nil
}

func (r *FileRepo) InsertOrUpdate(ctx context.Context, q Quest) (Quest, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.s.Quests[q.ID]; ok && q.ID != "" && sameContent(prev, q) {
		return prev.Clone(), nil
	}

	next := r.s.clone()
	stored := upsert(next.Quests, &next.LastOrder, q, r.now())
	if err := r.commitLocked(next); err != nil {
		return Quest{}, err
	}
	return stored, nil
}

func (r *FileRepo) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.s.Quests[id]; !ok {
		return ErrNotFound
	}
	next := r.s.clone()
	delete(next.Quests, id)
	return r.commitLocked(next)
}
