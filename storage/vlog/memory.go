package vlog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps vlogs in process memory. It backs the "memory"
// strategy for ephemeral deployments and is the store of choice in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	vlogs map[string]*Vlog
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vlogs: make(map[string]*Vlog),
	}
}

func (ms *MemoryStore) Create(ctx context.Context, title string, mediaType MediaType, mediaPath string) (*Vlog, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	v := &Vlog{
		ID:         uuid.New().String(),
		Title:      title,
		MediaType:  mediaType,
		MediaPath:  mediaPath,
		UploadDate: time.Now().UTC(),
		Comments:   []Comment{},
	}

	ms.vlogs[v.ID] = v
	ms.order = append(ms.order, v.ID)

	out := *v
	out.Comments = append([]Comment{}, v.Comments...)
	return &out, nil
}

func (ms *MemoryStore) List(ctx context.Context) ([]Vlog, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	out := make([]Vlog, 0, len(ms.vlogs))
	for _, id := range ms.order {
		v := ms.vlogs[id]
		cp := *v
		cp.Comments = append([]Comment{}, v.Comments...)
		out = append(out, cp)
	}

	// Insertion order already tracks creation time, but upload dates may
	// tie at clock resolution; a stable sort keeps newest first either way.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})

	return out, nil
}

func (ms *MemoryStore) Get(ctx context.Context, id string) (*Vlog, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	v, ok := ms.vlogs[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *v
	cp.Comments = append([]Comment{}, v.Comments...)
	return &cp, nil
}

func (ms *MemoryStore) AddComment(ctx context.Context, id string, name string, text string) (*Vlog, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	v, ok := ms.vlogs[id]
	if !ok {
		return nil, ErrNotFound
	}

	v.Comments = append(v.Comments, Comment{
		Name: name,
		Text: text,
		Date: time.Now().UTC(),
	})

	cp := *v
	cp.Comments = append([]Comment{}, v.Comments...)
	return &cp, nil
}

func (ms *MemoryStore) Close(ctx context.Context) error {
	return nil
}
