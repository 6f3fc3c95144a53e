// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package playlist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cloudygreybeard/vidshelf/pkg/catalog"
	"github.com/cloudygreybeard/vidshelf/pkg/storage"
)

// DefaultKey is the storage key holding all playlists.
const DefaultKey = "video-playlists"

// Options configures a Manager.
type Options struct {
	// Key is the storage key. Defaults to DefaultKey.
	Key string

	Logger *slog.Logger

	// Now overrides the clock.
	Now func() time.Time

	// Rand drives shuffle. Defaults to a time-seeded source.
	Rand *mathrand.Rand
}

// Manager owns the playlist collection and persists it after every
// mutation.
//
// Each mutation re-reads the stored list, applies the change and writes
// the list back, so concurrent processes sharing a store are
// last-writer-wins. A storage failure is logged and the in-memory list
// stays authoritative until the next successful write.
type Manager struct {
	mu        sync.Mutex
	store     storage.Storage
	key       string
	logger    *slog.Logger
	now       func() time.Time
	rand      *mathrand.Rand
	entropy   io.Reader
	playlists []Playlist

	// dirty is set while the stored list lags the in-memory one.
	dirty bool
}

// NewManager creates a Manager over store and loads the stored list.
func NewManager(ctx context.Context, store storage.Storage, opts Options) *Manager {
	m := &Manager{
		store:  store,
		key:    opts.Key,
		logger: opts.Logger,
		now:    opts.Now,
		rand:   opts.Rand,
	}
	if m.key == "" {
		m.key = DefaultKey
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.rand == nil {
		m.rand = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	}
	m.entropy = ulid.Monotonic(mathrand.New(mathrand.NewSource(m.now().UnixNano())), 0)
	m.playlists = []Playlist{}

	m.mu.Lock()
	m.refresh(ctx)
	m.mu.Unlock()
	return m
}

// List returns every playlist in creation order.
func (m *Manager) List() []Playlist {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Playlist, len(m.playlists))
	for i, p := range m.playlists {
		out[i] = p.Clone()
	}
	return out
}

// Get returns the playlist with id.
func (m *Manager) Get(id string) (Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return Playlist{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return m.playlists[i].Clone(), nil
}

// Reload re-reads the stored list.
func (m *Manager) Reload(ctx context.Context) []Playlist {
	m.mu.Lock()
	m.refresh(ctx)
	m.mu.Unlock()
	return m.List()
}

// Create adds a playlist named name holding videos. Videos without an ID
// are dropped and repeats are collapsed.
func (m *Manager) Create(ctx context.Context, name string, videos ...catalog.Video) (Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Playlist{}, ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh(ctx)

	now := m.now()
	p := Playlist{
		ID:             ulid.MustNew(ulid.Timestamp(now), m.entropy).String(),
		Name:           name,
		Videos:         catalog.Deduplicate(videos),
		CreatedAt:      now.UTC(),
		WatchedVideos:  map[string]bool{},
		VideoPositions: map[string]float64{},
	}
	m.playlists = append(m.playlists, p)
	m.persist(ctx)

	m.logger.Info("playlist created", "id", p.ID, "name", p.Name, "videos", len(p.Videos))
	return p.Clone(), nil
}

// AddVideo appends v. Adding a video already in the playlist is a no-op.
func (m *Manager) AddVideo(ctx context.Context, id string, v catalog.Video) (Playlist, error) {
	if v.Key() == "" {
		return Playlist{}, ErrInvalidVideo
	}
	return m.mutate(ctx, id, func(p *Playlist) error {
		if p.IndexOf(v.Key()) >= 0 {
			return nil
		}
		p.Videos = catalog.AppendVideos(p.Videos, v)
		return nil
	})
}

// RemoveVideo removes videoID along with its watched flag and saved
// position. The current index keeps pointing at the same video where
// possible.
func (m *Manager) RemoveVideo(ctx context.Context, id, videoID string) (Playlist, error) {
	return m.mutate(ctx, id, func(p *Playlist) error {
		i := p.IndexOf(videoID)
		if i < 0 {
			return fmt.Errorf("%s: %w", videoID, ErrVideoNotFound)
		}
		p.Videos = append(p.Videos[:i:i], p.Videos[i+1:]...)
		delete(p.WatchedVideos, videoID)
		delete(p.VideoPositions, videoID)
		if i < p.CurrentVideoIndex {
			p.CurrentVideoIndex--
		}
		p.clampIndex()
		return nil
	})
}

// Delete removes the playlist.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh(ctx)

	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	m.playlists = append(m.playlists[:i:i], m.playlists[i+1:]...)
	m.persist(ctx)
	m.logger.Info("playlist deleted", "id", id)
	return nil
}

// MarkWatched sets or clears the watched flag of videoID.
func (m *Manager) MarkWatched(ctx context.Context, id, videoID string, watched bool) (Playlist, error) {
	return m.mutate(ctx, id, func(p *Playlist) error {
		if watched {
			p.WatchedVideos[videoID] = true
		} else {
			delete(p.WatchedVideos, videoID)
		}
		return nil
	})
}

// ToggleWatched flips the watched flag of videoID.
func (m *Manager) ToggleWatched(ctx context.Context, id, videoID string) (Playlist, error) {
	return m.mutate(ctx, id, func(p *Playlist) error {
		if p.WatchedVideos[videoID] {
			delete(p.WatchedVideos, videoID)
		} else {
			p.WatchedVideos[videoID] = true
		}
		return nil
	})
}

// Update replaces the stored playlist carrying p.ID.
func (m *Manager) Update(ctx context.Context, p Playlist) (Playlist, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Playlist{}, ErrEmptyName
	}
	return m.mutate(ctx, p.ID, func(cur *Playlist) error {
		next := p.Clone()
		next.Name = name
		next.Videos = catalog.Deduplicate(next.Videos)
		if next.CreatedAt.IsZero() {
			next.CreatedAt = cur.CreatedAt
		}
		next.clampIndex()
		*cur = next
		return nil
	})
}

// Rename changes the playlist name.
func (m *Manager) Rename(ctx context.Context, id, name string) (Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Playlist{}, ErrEmptyName
	}
	return m.mutate(ctx, id, func(p *Playlist) error {
		p.Name = name
		return nil
	})
}

// UpdatePosition records the playback position of videoID in seconds.
func (m *Manager) UpdatePosition(ctx context.Context, id, videoID string, seconds float64) (Playlist, error) {
	if seconds < 0 {
		seconds = 0
	}
	return m.mutate(ctx, id, func(p *Playlist) error {
		p.VideoPositions[videoID] = seconds
		return nil
	})
}

// Next advances to the following video and marks it watched.
func (m *Manager) Next(ctx context.Context, id string) (Playlist, error) {
	return m.mutate(ctx, id, func(p *Playlist) error {
		return p.moveTo(p.CurrentVideoIndex+1, true)
	})
}

// Previous steps back one video. The watched set is left unchanged.
func (m *Manager) Previous(ctx context.Context, id string) (Playlist, error) {
	return m.mutate(ctx, id, func(p *Playlist) error {
		return p.moveTo(p.CurrentVideoIndex-1, false)
	})
}

// Select jumps to index and marks that video watched.
func (m *Manager) Select(ctx context.Context, id string, index int) (Playlist, error) {
	return m.mutate(ctx, id, func(p *Playlist) error {
		return p.moveTo(index, true)
	})
}

// Shuffle jumps to a random video other than the current one and marks
// it watched.
func (m *Manager) Shuffle(ctx context.Context, id string) (Playlist, error) {
	return m.mutate(ctx, id, func(p *Playlist) error {
		if len(p.Videos) < 2 {
			return ErrIndexOutOfRange
		}
		next := m.rand.Intn(len(p.Videos) - 1)
		if next >= p.CurrentVideoIndex {
			next++
		}
		return p.moveTo(next, true)
	})
}

func (p *Playlist) moveTo(index int, markWatched bool) error {
	if index < 0 || index >= len(p.Videos) {
		return fmt.Errorf("index %d of %d: %w", index, len(p.Videos), ErrIndexOutOfRange)
	}
	p.CurrentVideoIndex = index
	if markWatched {
		p.WatchedVideos[p.Videos[index].Key()] = true
	}
	return nil
}

// mutate applies fn to a copy of the playlist and commits it when fn
// succeeds.
func (m *Manager) mutate(ctx context.Context, id string, fn func(*Playlist) error) (Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh(ctx)

	i := m.index(id)
	if i < 0 {
		return Playlist{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	p := m.playlists[i].Clone()
	if err := fn(&p); err != nil {
		return Playlist{}, err
	}
	p.ID = m.playlists[i].ID
	m.playlists[i] = p
	m.persist(ctx)
	return p.Clone(), nil
}

func (m *Manager) index(id string) int {
	for i, p := range m.playlists {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// refresh replaces the in-memory list with the stored one. Read or
// decode failures, or unsaved local changes, keep the current list.
func (m *Manager) refresh(ctx context.Context) {
	if m.dirty {
		return
	}
	data, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		m.logger.Warn("reading playlists", "key", m.key, "error", err)
		return
	}
	if !ok {
		return
	}
	list, err := Decode(data)
	if err != nil {
		m.logger.Warn("decoding playlists", "key", m.key, "error", err)
		return
	}
	m.playlists = list
}

// persist writes the list. Failures are logged, not returned.
func (m *Manager) persist(ctx context.Context) {
	data, err := Encode(m.playlists)
	if err != nil {
		m.dirty = true
		m.logger.Warn("encoding playlists", "error", err)
		return
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		m.dirty = true
		m.logger.Warn("writing playlists", "key", m.key, "error", err)
		return
	}
	m.dirty = false
	m.logger.Debug("playlists saved", "key", m.key, "count", len(m.playlists))
}
