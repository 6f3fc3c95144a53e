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

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// exercise runs the behaviour every backend shares.
func exercise(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "video-playlists"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}

	if err := s.Set(ctx, "video-playlists", []byte(`[1]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "video-playlists", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, ok, err := s.Get(ctx, "video-playlists")
	if err != nil || !ok || string(got) != `[1,2]` {
		t.Fatalf("Get = %q, %v, %v", got, ok, err)
	}

	if err := s.Remove(ctx, "video-playlists"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(ctx, "video-playlists"); err != nil {
		t.Fatalf("Remove of absent key: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "video-playlists"); ok {
		t.Fatal("key still present after Remove")
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exercise(t, m)

	value := []byte("abc")
	_ = m.Set(context.Background(), "k", value)
	value[0] = 'x'
	got, _, _ := m.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}

	_ = m.Close()
	if err := m.Set(context.Background(), "k", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	f, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	exercise(t, f)

	if err := f.Set(context.Background(), "a/b", []byte("{}")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a%2Fb.json" {
		t.Fatalf("unexpected files %v", entries)
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("", "")
	if err != nil {
		t.Fatalf("Open default: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("default backend = %T", s)
	}

	if _, err := Open("file", ""); err == nil {
		t.Fatal("file backend without a directory should fail")
	}
	if _, err := Open("redis", ""); err == nil {
		t.Fatal("expected unknown backend error")
	}
}
