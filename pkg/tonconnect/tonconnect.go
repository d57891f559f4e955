// Package tonconnect holds the wire and domain types shared by the deep-link
// codec, the operation correlator and the client facade.
package tonconnect

import (
	"encoding/json"
	"fmt"
)

// Platform is an OS family a wallet app can be installed on.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// ReturnStrategy tells the wallet how to hand control back to the app.
type ReturnStrategy string

const (
	ReturnBack         ReturnStrategy = "back"
	ReturnPostRedirect ReturnStrategy = "post_redirect"
	ReturnNone         ReturnStrategy = "none"
)

// Data item names understood by wallets in a connect request.
const (
	ItemTonAddr  = "ton_addr"
	ItemTonProof = "ton_proof"
)

// DataItem is a piece of data requested from the wallet at connect time.
type DataItem struct {
	Name    string `json:"name"`
	Payload string `json:"payload,omitempty"`
}

// ConnectRequest is the payload embedded in an outbound connect link.
type ConnectRequest struct {
	ManifestURL    string         `json:"manifestUrl"`
	Items          []DataItem     `json:"items"`
	ReturnStrategy ReturnStrategy `json:"returnStrategy,omitempty"`
	ReturnScheme   string         `json:"returnScheme,omitempty"`
}

// ConnectResponse is what a wallet sends back after a successful connect.
// It is untrusted until the session id and proof have been validated.
type ConnectResponse struct {
	Session   string          `json:"session"`
	Name      string          `json:"name,omitempty"`
	AppName   string          `json:"appName,omitempty"`
	Version   string          `json:"version,omitempty"`
	Platform  string          `json:"platform,omitempty"`
	Address   string          `json:"address"`
	PublicKey string          `json:"publicKey"`
	Icon      string          `json:"icon,omitempty"`
	Proof     json.RawMessage `json:"proof,omitempty"`
}

// HasProof reports whether the response carries a non-null proof value.
func (r *ConnectResponse) HasProof() bool {
	return len(r.Proof) > 0 && string(r.Proof) != "null"
}

// WalletInfo returns the subset of the response retained after validation.
func (r *ConnectResponse) WalletInfo() *WalletInfo {
	return &WalletInfo{
		Name:      r.Name,
		AppName:   r.AppName,
		Version:   r.Version,
		Platform:  r.Platform,
		Address:   r.Address,
		PublicKey: r.PublicKey,
		Icon:      r.Icon,
	}
}

// ProofDomain is the requesting domain bound into a connection proof.
type ProofDomain struct {
	LengthBytes uint32 `json:"lengthBytes"`
	Value       string `json:"value"`
}

// Proof is the wallet's signed attestation of key ownership.
type Proof struct {
	Timestamp int64       `json:"timestamp"`
	Domain    ProofDomain `json:"domain"`
	Signature string      `json:"signature"`
	Payload   string      `json:"payload,omitempty"`
}

// WalletInfo describes the connected wallet as seen by callers.
type WalletInfo struct {
	Name      string `json:"name" validate:"max=256"`
	AppName   string `json:"appName" validate:"max=256"`
	Version   string `json:"version" validate:"max=64"`
	Platform  string `json:"platform" validate:"max=64"`
	Address   string `json:"address" validate:"required,max=128"`
	PublicKey string `json:"publicKey" validate:"required,hexadecimal,len=64"`
	Icon      string `json:"icon,omitempty" validate:"omitempty,url"`
}

// Status is the connection state. Connected is true exactly when Wallet is set.
type Status struct {
	Connected bool        `json:"connected"`
	Wallet    *WalletInfo `json:"wallet"`
}

// Connected returns the status for an established connection.
func Connected(w *WalletInfo) Status {
	if w == nil {
		return Disconnected()
	}
	return Status{Connected: true, Wallet: w}
}

// Disconnected returns the status with no wallet attached.
func Disconnected() Status {
	return Status{}
}

// Message is a single outgoing transfer inside a transaction request.
type Message struct {
	Address   string `json:"address"`
	Amount    string `json:"amount"`
	Payload   string `json:"payload,omitempty"`
	StateInit string `json:"stateInit,omitempty"`
}

// TransactionRequest asks the wallet to sign and send messages.
// ValidUntil is a unix timestamp in milliseconds.
type TransactionRequest struct {
	ValidUntil int64     `json:"validUntil"`
	Network    string    `json:"network,omitempty"`
	From       string    `json:"from,omitempty"`
	Messages   []Message `json:"messages"`
}

// TransactionResult is the signed transaction returned by the wallet.
type TransactionResult struct {
	BOC       string `json:"boc"`
	Signature string `json:"signature"`
}

// SignDataRequest asks the wallet to sign an arbitrary base64 payload.
type SignDataRequest struct {
	Data    string `json:"data"`
	Version string `json:"version,omitempty"`
	From    string `json:"from,omitempty"`
}

// SignDataResult is the wallet's reply to a sign-data request.
type SignDataResult struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// WalletError is an error reply sent by the wallet.
type WalletError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

// UserRejectedCode is the wallet error code for a declined request.
const UserRejectedCode = 300

// Event names emitted by the client.
type Event string

const (
	EventConnect      Event = "connect"
	EventDisconnect   Event = "disconnect"
	EventTransaction  Event = "transaction"
	EventError        Event = "error"
	EventStatusChange Event = "statusChange"
)
