// Package client is the TON Connect facade: it turns connect, transaction and
// sign-data calls into wallet deep links and completes them when the wallet's
// callback link comes back through the host's linking capability.
package client

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/internal/metrics"
	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/codec"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/correlator"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/events"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/proof"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/session"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/wallets"
)

// proofNonceSize is the number of random bytes in a ton_proof nonce.
const proofNonceSize = 32

var (
	ErrLinkNotOpened  = errors.New("linking capability did not open the url")
	ErrWalletSwitched = errors.New("preferred wallet changed during connect")
	ErrUnknownWallet  = errors.New("unknown wallet")
)

// Linker is the host's deep-link capability.
//
//go:generate mockery --name Linker --output mocks --outpkg mocks --filename mock_linker.go --with-expecter
type Linker interface {
	// OpenURL hands url to the OS and reports whether an app accepted it.
	OpenURL(ctx context.Context, url string) (bool, error)
	// InitialURL returns the link the app was launched with, or "".
	InitialURL(ctx context.Context) (string, error)
	// AddURLListener registers fn for inbound links and returns its removal.
	AddURLListener(fn func(url string)) func()
}

// RandomSource must be cryptographically secure. There is no fallback.
type RandomSource interface {
	RandomBytes(n int) ([]byte, error)
}

// Client composes the codec, the wallet registry, the proof verifier, the
// session store, the correlator and the status hub. It is safe for
// concurrent use.
type Client struct {
	cfg        *Config
	linker     Linker
	random     RandomSource
	sessions   *session.Store
	correlator *correlator.Correlator
	hub        *events.Hub
	verifier   *proof.Verifier
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.Mutex
	preferred wallets.Definition
	sessionID string
	destroyed bool
	unlisten  func()
}

// New creates a client and subscribes it to inbound links.
func New(cfg *Config, linker Linker, storage session.Storage, random RandomSource, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if linker == nil {
		return nil, fmt.Errorf("nil linker")
	}
	if storage == nil {
		return nil, fmt.Errorf("nil storage")
	}
	if random == nil {
		return nil, fmt.Errorf("nil random source: a secure random source is required")
	}

	preferred := wallets.Default()
	if cfg.PreferredWallet != "" {
		def, ok := wallets.Lookup(cfg.PreferredWallet)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWallet, cfg.PreferredWallet)
		}
		preferred = def
	}

	s := applyOptions(opts)
	mode, _ := proof.ParseMode(string(cfg.ProofMode))

	c := &Client{
		cfg:      cfg,
		linker:   linker,
		random:   random,
		sessions: session.NewStore(storage, cfg.StoragePrefix, session.WithLogger(s.logger)),
		hub:      events.NewHub(events.WithLogger(s.logger)),
		verifier: proof.NewVerifier(mode, proof.WithLogger(s.logger), proof.WithDomain(cfg.ProofDomain)),
		logger:   s.logger,
		now:      s.now,

		preferred: preferred,
	}
	c.correlator = correlator.New(cfg.Timeouts,
		correlator.WithLogger(s.logger),
		correlator.WithIDGenerator(c.newOperationID))

	c.unlisten = linker.AddURLListener(func(url string) {
		c.HandleCallback(context.Background(), url)
	})
	return c, nil
}

// Restore loads a persisted session and then processes the link the app was
// launched with, if any. Storage problems are logged and leave the client
// disconnected.
func (c *Client) Restore(ctx context.Context) (tonconnect.Status, error) {
	if err := c.checkAlive(); err != nil {
		return tonconnect.Disconnected(), err
	}

	sess, err := c.sessions.Load(ctx)
	switch {
	case errors.Is(err, session.ErrCorruptSession):
		c.logger.Warn("persisted session was corrupt and has been cleared", zap.Error(err))
	case err != nil:
		c.storageFailed("load", err)
	case sess != nil:
		c.mu.Lock()
		c.sessionID = sess.ID
		c.mu.Unlock()
		c.hub.SetStatus(tonconnect.Connected(sess.Wallet))
		metrics.Connected.Set(1)
		c.logger.Info("session restored",
			zap.String("session", truncate(sess.ID)),
			zap.String("address", sess.Wallet.Address))
	}

	initial, err := c.linker.InitialURL(ctx)
	if err != nil {
		c.logger.Warn("failed to read initial url", zap.Error(err))
	} else if initial != "" {
		c.HandleCallback(ctx, initial)
	}
	return c.Status(), nil
}

// Connect returns the connected wallet, starting a connect request if needed.
// It blocks until the wallet answers, the request times out, or ctx ends.
func (c *Client) Connect(ctx context.Context) (*tonconnect.WalletInfo, error) {
	if err := c.checkAlive(); err != nil {
		return nil, err
	}
	if st := c.hub.Status(); st.Connected {
		return st.Wallet, nil
	}

	op, err := c.correlator.Begin(correlator.KindConnect)
	if err != nil {
		return nil, err
	}

	wallet := c.PreferredWallet()
	params := codec.ConnectionParams{
		ManifestURL:         c.cfg.ManifestURL,
		UniversalLink:       wallet.UniversalLink,
		ReturnScheme:        c.cfg.ReturnScheme,
		IncludeReturnScheme: wallet.RequiresReturnScheme,
		ReturnStrategy:      wallet.ReturnStrategy,
	}
	if c.cfg.RequestProof {
		nonce, err := c.random.RandomBytes(proofNonceSize)
		if err != nil {
			err = apperrors.GeneralError(fmt.Errorf("generate proof nonce: %w", err))
			op.Abort(err)
			return nil, err
		}
		params.ProofPayload = hex.EncodeToString(nonce)
	}

	link, err := codec.BuildConnectionRequest(params)
	if err != nil {
		op.Abort(err)
		return nil, err
	}
	if err := c.open(ctx, op, wallet, link); err != nil {
		return nil, err
	}
	return await[*tonconnect.WalletInfo](ctx, c, op)
}

// SendTransaction validates req, asks the connected wallet to sign and send
// it, and blocks for the signed result.
func (c *Client) SendTransaction(ctx context.Context, req tonconnect.TransactionRequest) (*tonconnect.TransactionResult, error) {
	if err := c.checkAlive(); err != nil {
		return nil, err
	}
	if err := codec.ValidateTransactionRequest(req, c.now(), codec.WithStrictChecksum(c.cfg.StrictAddressChecksum)); err != nil {
		return nil, err
	}
	st := c.hub.Status()
	if !st.Connected {
		return nil, apperrors.NotConnectedError(nil)
	}
	if req.Network == "" {
		req.Network = c.cfg.Network
	}

	op, err := c.correlator.Begin(correlator.KindTransaction)
	if err != nil {
		return nil, err
	}

	wallet := c.walletFor(st.Wallet)
	link, err := codec.BuildTransactionRequest(codec.TransactionParams{
		UniversalLink:       wallet.UniversalLink,
		Request:             req,
		ReturnScheme:        c.cfg.ReturnScheme,
		IncludeReturnScheme: wallet.RequiresReturnScheme,
		ReturnStrategy:      wallet.ReturnStrategy,
	})
	if err != nil {
		op.Abort(err)
		return nil, err
	}
	if err := c.open(ctx, op, wallet, link); err != nil {
		return nil, err
	}
	return await[*tonconnect.TransactionResult](ctx, c, op)
}

// SignData asks the wallet to sign data. The bytes are always base64 encoded.
func (c *Client) SignData(ctx context.Context, data []byte, version string) (*tonconnect.SignDataResult, error) {
	return c.signData(ctx, codec.EncodeSignData(data), version)
}

// SignDataString is SignData for text. A string that already is canonical
// base64 is sent as is.
func (c *Client) SignDataString(ctx context.Context, data, version string) (*tonconnect.SignDataResult, error) {
	return c.signData(ctx, codec.EncodeSignDataString(data), version)
}

func (c *Client) signData(ctx context.Context, encoded, version string) (*tonconnect.SignDataResult, error) {
	if err := c.checkAlive(); err != nil {
		return nil, err
	}
	st := c.hub.Status()
	if !st.Connected {
		return nil, apperrors.NotConnectedError(nil)
	}

	op, err := c.correlator.Begin(correlator.KindSignData)
	if err != nil {
		return nil, err
	}

	wallet := c.walletFor(st.Wallet)
	link, err := codec.BuildSignDataRequest(codec.SignDataParams{
		UniversalLink:       wallet.UniversalLink,
		Request:             tonconnect.SignDataRequest{Data: encoded, Version: version, From: st.Wallet.Address},
		ReturnScheme:        c.cfg.ReturnScheme,
		IncludeReturnScheme: wallet.RequiresReturnScheme,
		ReturnStrategy:      wallet.ReturnStrategy,
	})
	if err != nil {
		op.Abort(err)
		return nil, err
	}
	if err := c.open(ctx, op, wallet, link); err != nil {
		return nil, err
	}
	return await[*tonconnect.SignDataResult](ctx, c, op)
}

// Disconnect forgets the wallet. Pending operations are left alone; callers
// should not disconnect while a connect is in flight.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.checkAlive(); err != nil {
		return err
	}

	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()
	c.hub.SetStatus(tonconnect.Disconnected())
	metrics.Connected.Set(0)

	if err := c.sessions.Clear(ctx); err != nil {
		c.storageFailed("clear", err)
	}
	c.hub.Emit(tonconnect.EventDisconnect, nil)
	c.logger.Info("wallet disconnected")
	return nil
}

// Status returns the current connection status.
func (c *Client) Status() tonconnect.Status {
	return c.hub.Status()
}

// Subscribe calls fn with the current status now and on every change.
func (c *Client) Subscribe(fn events.StatusFunc) func() {
	return c.hub.Subscribe(fn)
}

// On registers fn for a named event.
func (c *Client) On(event tonconnect.Event, fn events.Listener) func() {
	return c.hub.On(event, fn)
}

// SetPreferredWallet selects the wallet used by the next connect. A connect
// that is already pending is cancelled, since its link targets the old wallet.
func (c *Client) SetPreferredWallet(name string) error {
	def, ok := wallets.Lookup(name)
	if !ok {
		return apperrors.UnknownWalletError(fmt.Errorf("%w: %q", ErrUnknownWallet, name),
			fmt.Sprintf("wallet %q is not supported", name))
	}

	c.mu.Lock()
	c.preferred = def
	c.mu.Unlock()

	if c.correlator.Reject(correlator.KindConnect,
		apperrors.CancelledError(ErrWalletSwitched, "connect cancelled because the wallet was changed")) {
		c.logger.Info("pending connect cancelled by wallet switch", zap.String("wallet", def.Name))
	}
	return nil
}

// PreferredWallet returns the wallet used by the next connect.
func (c *Client) PreferredWallet() wallets.Definition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preferred
}

// SessionID returns the id of the current session, or "".
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Destroy unsubscribes from the linker, drops all subscribers and listeners,
// and discards pending operations. Their waiters get CLIENT_DESTROYED; no
// events are emitted for them.
func (c *Client) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	unlisten := c.unlisten
	c.unlisten = nil
	c.mu.Unlock()

	if unlisten != nil {
		unlisten()
	}
	c.hub.Clear()
	c.correlator.DiscardAll()
	c.logger.Info("client destroyed")
}

func (c *Client) checkAlive() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return apperrors.DestroyedError(nil)
	}
	return nil
}

// open hands link to the linker. On failure the operation is rejected with
// LINKING_FAILED and the same error is returned.
func (c *Client) open(ctx context.Context, op *correlator.Operation, wallet wallets.Definition, link string) error {
	ok, err := c.linker.OpenURL(ctx, link)
	if err == nil && !ok {
		err = ErrLinkNotOpened
	}
	if err != nil {
		lerr := apperrors.LinkingError(err, fmt.Sprintf("could not open %s", wallet.Name))
		op.Abort(lerr)
		return lerr
	}
	c.logger.Debug("wallet link opened",
		zap.String("kind", string(op.Kind)),
		zap.String("operation_id", op.ID),
		zap.String("wallet", wallet.Name))
	return nil
}

// walletFor returns the registry entry of the connected wallet, falling back
// to the preferred one.
func (c *Client) walletFor(w *tonconnect.WalletInfo) wallets.Definition {
	if w != nil {
		for _, name := range []string{w.AppName, w.Name} {
			if def, ok := wallets.Lookup(name); ok {
				return def
			}
		}
	}
	return c.PreferredWallet()
}

func (c *Client) newOperationID() (string, error) {
	id, err := uuid.NewRandomFromReader(randomReader{c.random})
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (c *Client) storageFailed(op string, err error) {
	metrics.ErrorsTotal.WithLabelValues("session", op).Inc()
	c.logger.Warn("session storage failed",
		zap.String("op", op),
		zap.Error(apperrors.StorageError(err, "session storage "+op+" failed")))
}

// await waits for op and reports asynchronous failures on the error event.
func await[T any](ctx context.Context, c *Client, op *correlator.Operation) (T, error) {
	res, err := correlator.Await[T](ctx, op)
	if err != nil && !apperrors.IsCode(err, apperrors.CodeClientDestroyed) {
		c.hub.Emit(tonconnect.EventError, err)
	}
	return res, err
}

// randomReader adapts a RandomSource to io.Reader.
type randomReader struct {
	src RandomSource
}

func (r randomReader) Read(p []byte) (int, error) {
	b, err := r.src.RandomBytes(len(p))
	if err != nil {
		return 0, err
	}
	if len(b) != len(p) {
		return 0, fmt.Errorf("random source returned %d bytes, want %d", len(b), len(p))
	}
	return copy(p, b), nil
}

func truncate(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}
