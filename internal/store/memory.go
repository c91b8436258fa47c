package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shorturl-analytics/internal/model"
)

// Memory 进程内存储，用于测试与演示。事件只追加，读取时返回副本。
type Memory struct {
	mu     sync.RWMutex
	nextID uint
	links  map[uint]*model.ShortLink
	paths  map[string]uint
	events map[uint][]model.AccessEvent
	now    func() time.Time
}

// NewMemory 创建内存存储
func NewMemory() *Memory {
	return &Memory{
		links:  make(map[uint]*model.ShortLink),
		paths:  make(map[string]uint),
		events: make(map[uint][]model.AccessEvent),
		now:    time.Now,
	}
}

func (m *Memory) Create(_ context.Context, link *model.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.paths[link.ShortPath]; ok {
		return ErrPathTaken
	}
	m.nextID++
	link.ID = m.nextID
	if link.CreatedAt.IsZero() {
		link.CreatedAt = m.now()
	}
	link.UpdatedAt = link.CreatedAt
	stored := *link
	m.links[link.ID] = &stored
	m.paths[link.ShortPath] = link.ID
	return nil
}

func (m *Memory) ByID(_ context.Context, id uint) (*model.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[id]
	if !ok {
		return nil, ErrLinkNotFound
	}
	cp := *link
	return &cp, nil
}

func (m *Memory) ByPath(ctx context.Context, path string) (*model.ShortLink, error) {
	m.mu.RLock()
	id, ok := m.paths[path]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrLinkNotFound
	}
	return m.ByID(ctx, id)
}

func (m *Memory) List(_ context.Context, q LinkQuery) ([]model.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	links := make([]model.ShortLink, 0, len(m.links))
	for _, link := range m.links {
		if term != "" &&
			!strings.Contains(strings.ToLower(link.Title), term) &&
			!strings.Contains(strings.ToLower(link.ShortPath), term) &&
			!strings.Contains(strings.ToLower(link.DestinationURL), term) {
			continue
		}
		links = append(links, *link)
	}
	sort.Slice(links, func(i, j int) bool {
		if !links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].CreatedAt.After(links[j].CreatedAt)
		}
		return links[i].ID > links[j].ID
	})
	return links, nil
}

func (m *Memory) PathExists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.paths[path]
	return ok, nil
}

func (m *Memory) SetActive(_ context.Context, id uint, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return ErrLinkNotFound
	}
	link.IsActive = active
	link.UpdatedAt = m.now()
	return nil
}

func (m *Memory) Delete(_ context.Context, id uint, cascade bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return ErrLinkNotFound
	}
	delete(m.paths, link.ShortPath)
	delete(m.links, id)
	if cascade {
		delete(m.events, id)
	}
	return nil
}

func (m *Memory) Touch(_ context.Context, id uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return ErrLinkNotFound
	}
	link.AccessCount++
	if link.LastAccessedAt == nil || link.LastAccessedAt.Before(at) {
		t := at
		link.LastAccessedAt = &t
	}
	return nil
}

func (m *Memory) Totals(_ context.Context) (Totals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var t Totals
	for _, link := range m.links {
		t.TotalLinks++
		t.TotalClicks += link.AccessCount
		if link.IsActive {
			t.ActiveLinks++
		}
	}
	return t, nil
}

func (m *Memory) Append(_ context.Context, event *model.AccessEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.LinkID] = append(m.events[event.LinkID], *event)
	return nil
}

func (m *Memory) EventsForLink(_ context.Context, linkID uint, r TimeRange) ([]model.AccessEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]model.AccessEvent, 0, len(m.events[linkID]))
	for _, ev := range m.events[linkID] {
		if !r.From.IsZero() && ev.Timestamp.Before(r.From) {
			continue
		}
		if !r.To.IsZero() && ev.Timestamp.After(r.To) {
			continue
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}
