package store

import (
	"testing"
	"time"
)

func TestMemoryStoreSaveGetDelete(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, err := s.GetLink("missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	link := Link{ID: "abc", GroupLink: "https://t.me/somegroup", OwnerID: 42}
	if err := s.SaveLink(link); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := s.GetLink("abc")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.GroupLink != "https://t.me/somegroup" || got.OwnerID != 42 {
		t.Fatalf("unexpected link: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be filled in")
	}

	if err := s.DeleteLink("abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.GetLink("abc"); ok {
		t.Fatal("expected link to be gone after delete")
	}
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	s := NewMemoryStore()
	_ = s.SaveLink(Link{ID: "abc", GroupLink: "https://t.me/old", OwnerID: 1})
	_ = s.SaveLink(Link{ID: "abc", GroupLink: "https://t.me/new", OwnerID: 1})

	got, ok, _ := s.GetLink("abc")
	if !ok || got.GroupLink != "https://t.me/new" {
		t.Fatalf("expected overwrite, got %+v ok=%v", got, ok)
	}
}

func TestMemoryStoreListLinks(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	_ = s.SaveLink(Link{ID: "a", GroupLink: "https://t.me/one", OwnerID: 7, CreatedAt: base})
	_ = s.SaveLink(Link{ID: "b", GroupLink: "https://t.me/two", OwnerID: 7, CreatedAt: base.Add(time.Hour)})
	_ = s.SaveLink(Link{ID: "c", GroupLink: "https://t.me/other", OwnerID: 8, CreatedAt: base})

	got, err := s.ListLinks(7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 links, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("expected newest first, got %q then %q", got[0].ID, got[1].ID)
	}

	empty, err := s.ListLinks(999)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected no links for unknown owner, got %v err=%v", empty, err)
	}
}
