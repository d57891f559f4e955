package events

import (
	"sync"
	"testing"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

func TestSubscribe_DeliversCurrentStatus(t *testing.T) {
	h := NewHub()
	w := &tonconnect.WalletInfo{Address: "addr", PublicKey: "key"}
	h.SetStatus(tonconnect.Connected(w))

	var got []tonconnect.Status
	unsubscribe := h.Subscribe(func(s tonconnect.Status) { got = append(got, s) })
	if len(got) != 1 || !got[0].Connected || got[0].Wallet != w {
		t.Fatalf("expected synchronous delivery of current status, got %+v", got)
	}

	h.SetStatus(tonconnect.Disconnected())
	if len(got) != 2 || got[1].Connected || got[1].Wallet != nil {
		t.Fatalf("expected disconnect to be delivered, got %+v", got)
	}

	unsubscribe()
	h.SetStatus(tonconnect.Connected(w))
	if len(got) != 2 {
		t.Fatalf("unsubscribed callback still called: %+v", got)
	}
}

func TestSetStatus_NormalizesInvariant(t *testing.T) {
	h := NewHub()
	h.SetStatus(tonconnect.Status{Connected: true})
	if s := h.Status(); s.Connected {
		t.Fatalf("connected without wallet: %+v", s)
	}

	h.SetStatus(tonconnect.Status{Wallet: &tonconnect.WalletInfo{Address: "a"}})
	if s := h.Status(); !s.Connected {
		t.Fatalf("wallet without connected flag: %+v", s)
	}
}

func TestSetStatus_EmitsStatusChange(t *testing.T) {
	h := NewHub()
	var payloads []any
	h.On(tonconnect.EventStatusChange, func(p any) { payloads = append(payloads, p) })

	h.SetStatus(tonconnect.Disconnected())
	if len(payloads) != 1 {
		t.Fatalf("expected one statusChange event, got %d", len(payloads))
	}
	if _, ok := payloads[0].(tonconnect.Status); !ok {
		t.Fatalf("unexpected payload type %T", payloads[0])
	}
}

func TestPanickingCallbacksAreContained(t *testing.T) {
	h := NewHub()
	h.Subscribe(func(tonconnect.Status) { panic("subscriber") })
	h.On(tonconnect.EventConnect, func(any) { panic("listener") })

	var reached bool
	h.On(tonconnect.EventConnect, func(any) { reached = true })

	h.SetStatus(tonconnect.Disconnected())
	h.Emit(tonconnect.EventConnect, nil)
	if !reached {
		t.Fatal("listener after a panicking one was not called")
	}
}

func TestOn_Unsubscribe(t *testing.T) {
	h := NewHub()
	var first, second int
	off := h.On(tonconnect.EventTransaction, func(any) { first++ })
	h.On(tonconnect.EventTransaction, func(any) { second++ })

	h.Emit(tonconnect.EventTransaction, nil)
	off()
	h.Emit(tonconnect.EventTransaction, nil)

	if first != 1 || second != 2 {
		t.Fatalf("first=%d second=%d", first, second)
	}
}

func TestClear(t *testing.T) {
	h := NewHub()
	var calls int
	h.Subscribe(func(tonconnect.Status) { calls++ })
	h.On(tonconnect.EventDisconnect, func(any) { calls++ })
	calls = 0

	h.Clear()
	h.SetStatus(tonconnect.Disconnected())
	h.Emit(tonconnect.EventDisconnect, nil)
	if calls != 0 {
		t.Fatalf("callbacks survived Clear(): %d", calls)
	}
}

func TestSetStatus_NestedChangeKeepsOrder(t *testing.T) {
	h := NewHub()
	w := &tonconnect.WalletInfo{Address: "addr", PublicKey: "key"}

	// the first subscriber disconnects as soon as it sees a wallet
	h.Subscribe(func(s tonconnect.Status) {
		if s.Connected {
			h.SetStatus(tonconnect.Disconnected())
		}
	})
	var seen []bool
	h.Subscribe(func(s tonconnect.Status) { seen = append(seen, s.Connected) })
	var changes []bool
	h.On(tonconnect.EventStatusChange, func(p any) { changes = append(changes, p.(tonconnect.Status).Connected) })

	h.SetStatus(tonconnect.Connected(w))

	if h.Status().Connected {
		t.Fatal("nested disconnect was lost")
	}
	want := []bool{false, true, false}
	if len(seen) != len(want) {
		t.Fatalf("subscriber saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("subscriber saw %v, want %v", seen, want)
		}
	}
	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Fatalf("statusChange order %v", changes)
	}
}

func TestSubscribe_ConcurrentSetStatusEndsOnLatest(t *testing.T) {
	h := NewHub()
	w := &tonconnect.WalletInfo{Address: "addr", PublicKey: "key"}

	for i := 0; i < 50; i++ {
		var (
			mu   sync.Mutex
			last *tonconnect.Status
			wg   sync.WaitGroup
		)
		h.SetStatus(tonconnect.Disconnected())
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Subscribe(func(s tonconnect.Status) {
				mu.Lock()
				last = &s
				mu.Unlock()
			})
		}()
		go func() {
			defer wg.Done()
			h.SetStatus(tonconnect.Connected(w))
		}()
		wg.Wait()

		mu.Lock()
		got := last
		mu.Unlock()
		if got == nil || !got.Connected {
			t.Fatalf("iteration %d: subscriber ended on stale status %+v", i, got)
		}
		h.Clear()
	}
}
