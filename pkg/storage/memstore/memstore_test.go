package memstore

import (
	"context"
	"testing"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/session"
)

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("unexpected Get() result %q %v %v", v, ok, err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("second Remove() failed: %v", err)
	}
	if len(s.Snapshot()) != 0 {
		t.Fatalf("expected empty store, got %v", s.Snapshot())
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := New()
	_ = s.Set(context.Background(), "k", "v")
	snap := s.Snapshot()
	snap["k"] = "changed"
	if v, _, _ := s.Get(context.Background(), "k"); v != "v" {
		t.Fatalf("snapshot aliased the store: %q", v)
	}
}

func TestStore_BacksSessionStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	sessions := session.NewStore(s, "app_")

	err := sessions.Save(ctx, session.Session{
		ID: "abc123",
		Wallet: &tonconnect.WalletInfo{
			Address:   "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8",
			PublicKey: "82a0b2543d06fec0aac952e9ec738be56ab1b6027fc0c1aa817ae14b4d1ed2fb",
		},
	})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, ok := s.Snapshot()["app_session"]; !ok {
		t.Fatalf("expected prefixed session key, got %v", s.Snapshot())
	}
}
