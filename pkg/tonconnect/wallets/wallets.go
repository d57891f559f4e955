// Package wallets is the static registry of wallet apps a connect request can target.
package wallets

import (
	"slices"
	"strings"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// Definition describes a wallet app and how to reach it.
type Definition struct {
	Name          string
	AppName       string
	UniversalLink string
	// Scheme is the wallet's native URL scheme, without "://".
	Scheme         string
	Platforms      []tonconnect.Platform
	ReturnStrategy tonconnect.ReturnStrategy
	// RequiresReturnScheme marks wallets that cannot route the callback
	// unless the app's return scheme is embedded in the request payload.
	RequiresReturnScheme bool
}

// Supports reports whether the wallet advertises platform p.
func (d Definition) Supports(p tonconnect.Platform) bool {
	return slices.Contains(d.Platforms, p)
}

var mobile = []tonconnect.Platform{tonconnect.PlatformIOS, tonconnect.PlatformAndroid}

// registry is ordered; the first entry is the default wallet.
var registry = []Definition{
	{
		Name:           "Tonkeeper",
		AppName:        "tonkeeper",
		UniversalLink:  "https://app.tonkeeper.com/ton-connect",
		Scheme:         "tonkeeper-tc",
		Platforms:      []tonconnect.Platform{tonconnect.PlatformIOS, tonconnect.PlatformAndroid, tonconnect.PlatformWeb},
		ReturnStrategy: tonconnect.ReturnBack,
	},
	{
		Name:                 "MyTonWallet",
		AppName:              "mytonwallet",
		UniversalLink:        "https://connect.mytonwallet.org",
		Scheme:               "mytonwallet-tc",
		Platforms:            []tonconnect.Platform{tonconnect.PlatformIOS, tonconnect.PlatformAndroid, tonconnect.PlatformWeb},
		ReturnStrategy:       tonconnect.ReturnBack,
		RequiresReturnScheme: true,
	},
	{
		Name:                 "Tonhub",
		AppName:              "tonhub",
		UniversalLink:        "https://tonhub.com/ton-connect",
		Scheme:               "tonhub",
		Platforms:            mobile,
		ReturnStrategy:       tonconnect.ReturnBack,
		RequiresReturnScheme: true,
	},
	{
		Name:           "Bitget Wallet",
		AppName:        "bitgetTonWallet",
		UniversalLink:  "https://bkcode.vip/ton-connect",
		Scheme:         "bitkeep",
		Platforms:      mobile,
		ReturnStrategy: tonconnect.ReturnPostRedirect,
	},
}

// All returns a copy of the registry in priority order.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Default returns the first registered wallet.
func Default() Definition {
	return registry[0]
}

// Lookup finds a wallet by display name or app name, ignoring case.
func Lookup(name string) (Definition, bool) {
	name = strings.TrimSpace(name)
	for _, d := range registry {
		if strings.EqualFold(d.Name, name) || strings.EqualFold(d.AppName, name) {
			return d, true
		}
	}
	return Definition{}, false
}

// FilterByPlatform returns the wallets that advertise platform p, in registry order.
func FilterByPlatform(p tonconnect.Platform) []Definition {
	var out []Definition
	for _, d := range registry {
		if d.Supports(p) {
			out = append(out, d)
		}
	}
	return out
}
