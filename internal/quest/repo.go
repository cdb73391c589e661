package quest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("quest not found")

// Repository is the authoritative quest store.
// InsertOrUpdate assigns an ID when the quest has none and returns the stored value.
type Repository interface {
	Seed(ctx context.Context, quests []Quest) error

	List(ctx context.Context) ([]Quest, error)
	Get(ctx context.Context, id string) (Quest, error)

	InsertOrUpdate(ctx context.Context, q Quest) (Quest, error)
	Delete(ctx context.Context, id string) error
}

func newID() string {
	return uuid.NewString()
}

func normalizeQuest(q *Quest) {
	if q.Objectives == nil {
		q.Objectives = []Objective{}
	}
	for i := range q.Objectives {
		if q.Objectives[i].State == "" {
			q.Objectives[i].State = StateActive
		}
	}
}

// sameContent reports whether two quests differ only in store bookkeeping.
func sameContent(a, b Quest) bool {
	if a.Title != b.Title || a.ViewStyle != b.ViewStyle || a.Visible != b.Visible {
		return false
	}
	if len(a.Objectives) != len(b.Objectives) {
		return false
	}
	for i := range a.Objectives {
		if a.Objectives[i] != b.Objectives[i] {
			return false
		}
	}
	return true
}

func sortByOrder(qs []Quest) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Order != qs[j].Order {
			return qs[i].Order < qs[j].Order
		}
		return qs[i].ID < qs[j].ID
	})
}

// upsert writes q into quests and returns the stored value.
// Repeating an identical update leaves the stored quest untouched.
func upsert(quests map[string]Quest, lastOrder *int, q Quest, now time.Time) Quest {
	q = q.Clone()
	normalizeQuest(&q)

	if q.ID == "" {
		q.ID = newID()
	}

	if prev, ok := quests[q.ID]; ok {
		if sameContent(prev, q) {
			return prev.Clone()
		}
		q.Order = prev.Order
		q.CreatedAt = prev.CreatedAt
	} else {
		*lastOrder++
		q.Order = *lastOrder
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	quests[q.ID] = q
	return q.Clone()
}
