package client

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/internal/metrics"
	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/codec"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/correlator"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/session"
)

var rejectionKeywords = []string{"reject", "declin", "cancel", "denied"}

// HandleCallback routes an inbound link to the pending operation it answers.
// It reports whether the link settled an operation; anything else, including
// links for other schemes, is discarded.
func (c *Client) HandleCallback(ctx context.Context, rawURL string) bool {
	if c.checkAlive() != nil {
		return false
	}

	cb := codec.ParseCallbackURL(rawURL, c.cfg.ReturnScheme)
	var handled bool
	switch cb.Kind {
	case codec.CallbackError:
		handled = c.handleWalletError(cb.Error)
	case codec.CallbackConnect:
		handled = c.handleConnect(ctx, cb.Connect)
	case codec.CallbackSigned:
		handled = c.handleSigned(cb.Signed)
	case codec.CallbackSignature:
		handled = c.correlator.Resolve(correlator.KindSignData, cb.Signature)
	default:
		c.logger.Debug("ignoring unrecognized callback", zap.String("reason", cb.Reason))
	}

	metrics.CallbacksReceived.WithLabelValues(string(cb.Kind), boolLabel(handled)).Inc()
	if !handled && cb.Kind != codec.CallbackUnrecognized {
		c.logger.Info("discarding callback with no matching pending operation",
			zap.String("shape", string(cb.Kind)))
	}
	return handled
}

// handleWalletError rejects every pending operation; an error reply carries
// no indication of which request it answers.
func (c *Client) handleWalletError(werr *tonconnect.WalletError) bool {
	var err error
	if isRejection(werr) {
		err = apperrors.UserRejectedError(werr, "request declined in the wallet: "+werr.Message)
	} else {
		err = apperrors.WalletError(werr, "wallet returned an error: "+werr.Message)
	}
	kinds := c.correlator.RejectAll(err)
	if len(kinds) > 0 {
		c.logger.Info("wallet error delivered",
			zap.Int("code", werr.Code),
			zap.Any("kinds", kinds))
	}
	return len(kinds) > 0
}

// handleConnect claims the pending connect before touching any state, so
// nothing racing with it can leave the client connected while the caller
// sees a failure.
func (c *Client) handleConnect(ctx context.Context, resp *tonconnect.ConnectResponse) bool {
	op, ok := c.correlator.Claim(correlator.KindConnect)
	if !ok {
		return false
	}

	wallet, err := c.validateConnect(resp)
	if err != nil {
		c.correlator.Complete(op, nil, err)
		return true
	}

	// in-memory state first; persistence may fail and is not fatal
	c.mu.Lock()
	c.sessionID = resp.Session
	c.mu.Unlock()
	c.hub.SetStatus(tonconnect.Connected(wallet))
	metrics.Connected.Set(1)

	if err := c.sessions.Save(ctx, session.Session{ID: resp.Session, Wallet: wallet}); err != nil {
		c.storageFailed("save", err)
	}

	c.hub.Emit(tonconnect.EventConnect, wallet)
	c.logger.Info("wallet connected",
		zap.String("wallet", wallet.AppName),
		zap.String("address", wallet.Address),
		zap.String("session", truncate(resp.Session)),
		zap.String("operation_id", op.ID))
	return c.correlator.Complete(op, wallet, nil)
}

func (c *Client) validateConnect(resp *tonconnect.ConnectResponse) (*tonconnect.WalletInfo, error) {
	if err := codec.ValidateAddress(resp.Address, codec.WithStrictChecksum(c.cfg.StrictAddressChecksum)); err != nil {
		return nil, apperrors.ProtocolError(err, "wallet returned an invalid address")
	}
	if err := c.verifier.Verify(resp); err != nil {
		return nil, err
	}
	if err := session.ValidateSessionID(resp.Session); err != nil {
		return nil, apperrors.ProtocolError(err, "wallet returned an invalid session id")
	}
	wallet := resp.WalletInfo()
	if err := session.ValidateWallet(wallet); err != nil {
		return nil, apperrors.ProtocolError(err, "wallet returned invalid account data")
	}
	return wallet, nil
}

// handleSigned routes a {boc, signature} reply. Transactions take priority
// over sign-data requests since the payload carries no type.
func (c *Client) handleSigned(res *tonconnect.TransactionResult) bool {
	op, ok := c.correlator.ClaimSignature()
	if !ok {
		return false
	}
	if op.Kind == correlator.KindSignData {
		return c.correlator.Complete(op, &tonconnect.SignDataResult{Signature: res.Signature}, nil)
	}

	c.hub.Emit(tonconnect.EventTransaction, res)
	return c.correlator.Complete(op, res, nil)
}

func isRejection(werr *tonconnect.WalletError) bool {
	if werr.Code == tonconnect.UserRejectedCode {
		return true
	}
	msg := strings.ToLower(werr.Message)
	for _, kw := range rejectionKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
