// Package bridge holds the request and response types of the tonlinkd host API.
package bridge

import (
	"time"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/correlator"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/wallets"
)

// OperationStatus is the lifecycle state of a tracked operation.
type OperationStatus string

const (
	OperationPending   OperationStatus = "pending"
	OperationCompleted OperationStatus = "completed"
	OperationFailed    OperationStatus = "failed"
)

// Operation is a wallet request started through the host API. Link is the
// deep link the caller must hand to the user.
type Operation struct {
	ID        string          `json:"id"`
	Kind      correlator.Kind `json:"kind"`
	Status    OperationStatus `json:"status"`
	Link      string          `json:"link,omitempty"`
	Result    any             `json:"result,omitempty"`
	Error     *OperationError `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Done reports whether the operation has settled.
func (o *Operation) Done() bool {
	return o.Status != OperationPending
}

// OperationError is the failure of a settled operation.
type OperationError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Recovery string `json:"recovery,omitempty"`
}

// TransferRequest is a single-message TON transfer.
type TransferRequest struct {
	To      string  `json:"to"`
	Amount  float64 `json:"amount"`
	Payload string  `json:"payload,omitempty"`
}

// SignDataRequest asks the connected wallet to sign text.
type SignDataRequest struct {
	Data    string `json:"data"`
	Version string `json:"version,omitempty"`
}

// CallbackRequest delivers an inbound callback link.
type CallbackRequest struct {
	URL string `json:"url"`
}

// CallbackResponse reports whether a delivered link settled an operation.
type CallbackResponse struct {
	Handled bool `json:"handled"`
}

// PreferredWalletRequest selects the wallet for the next connect.
type PreferredWalletRequest struct {
	Name string `json:"name"`
}

// Wallet is the public view of a registry entry.
type Wallet struct {
	Name           string                    `json:"name"`
	AppName        string                    `json:"app_name"`
	UniversalLink  string                    `json:"universal_link"`
	Scheme         string                    `json:"scheme"`
	Platforms      []tonconnect.Platform     `json:"platforms"`
	ReturnStrategy tonconnect.ReturnStrategy `json:"return_strategy"`
}

// WalletFrom converts a registry definition.
func WalletFrom(d wallets.Definition) Wallet {
	return Wallet{
		Name:           d.Name,
		AppName:        d.AppName,
		UniversalLink:  d.UniversalLink,
		Scheme:         d.Scheme,
		Platforms:      d.Platforms,
		ReturnStrategy: d.ReturnStrategy,
	}
}

// TransactionStatus is the explorer's view of a sent transaction.
type TransactionStatus struct {
	BOC    string `json:"boc"`
	Status string `json:"status"`
}
