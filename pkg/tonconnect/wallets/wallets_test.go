package wallets

import (
	"testing"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

func TestDefault(t *testing.T) {
	if got := Default(); got.Name != "Tonkeeper" {
		t.Fatalf("expected Tonkeeper as default, got %s", got.Name)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"tonkeeper", "TONKEEPER", "Tonkeeper", "mytonwallet", "MyTonWallet", " tonhub "} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) found nothing", name)
		}
	}
	if _, ok := Lookup("nonexistent"); ok {
		t.Fatal("expected unknown wallet lookup to fail")
	}
	if _, ok := Lookup(""); ok {
		t.Fatal("expected empty lookup to fail")
	}
}

func TestFilterByPlatform(t *testing.T) {
	web := FilterByPlatform(tonconnect.PlatformWeb)
	for _, d := range web {
		if !d.Supports(tonconnect.PlatformWeb) {
			t.Fatalf("%s does not support web", d.Name)
		}
	}
	if len(web) == 0 || len(web) >= len(All()) {
		t.Fatalf("expected a strict subset of wallets on web, got %d of %d", len(web), len(All()))
	}
	if got := FilterByPlatform("desktop"); len(got) != 0 {
		t.Fatalf("expected no wallets for unknown platform, got %d", len(got))
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "mutated"
	if Default().Name == "mutated" {
		t.Fatal("All() exposed the registry")
	}
}

func TestRegistryEntriesComplete(t *testing.T) {
	for _, d := range All() {
		if d.Name == "" || d.AppName == "" || d.UniversalLink == "" || len(d.Platforms) == 0 {
			t.Errorf("incomplete definition %+v", d)
		}
	}
}
