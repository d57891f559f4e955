package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/pkg/bridge"
	"github.com/chainsafe/ton-deeplink/pkg/explorer"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

const (
	serviceName = "bridge"

	// logValueMaxLen caps addresses, links and payloads in log lines
	logValueMaxLen = 64

	// bocDisplaySize is the length above which a BOC is shortened
	bocDisplaySize = 16
)

// logService is a logging decorator for Service
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog wraps svc so every call is logged with its duration and outcome.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{svc: svc, logger: logger}
}

// logCall logs method entry and returns a function that logs the outcome.
func (ls *logService) logCall(method string, fields ...zap.Field) func(err error, extra ...zap.Field) {
	start := time.Now()
	base := append([]zap.Field{
		zap.String("service", serviceName),
		zap.String("method", method),
	}, fields...)

	ls.logger.Debug(method+" started", base...)

	return func(err error, extra ...zap.Field) {
		out := append(base, zap.Duration("duration", time.Since(start)))
		if err != nil {
			ls.logger.Error(method+" failed", append(out, zap.Error(err))...)
			return
		}
		ls.logger.Info(method+" completed", append(out, extra...)...)
	}
}

func (ls *logService) StartConnect(ctx context.Context) (op *bridge.Operation, err error) {
	done := ls.logCall("StartConnect")
	defer func() { done(err, operationFields(op)...) }()
	return ls.svc.StartConnect(ctx)
}

func (ls *logService) StartTransaction(
	ctx context.Context,
	req tonconnect.TransactionRequest,
) (op *bridge.Operation, err error) {
	done := ls.logCall("StartTransaction",
		zap.Int("messages", len(req.Messages)),
		zap.Int64("valid_until", req.ValidUntil),
		zap.String("network", req.Network),
	)
	defer func() { done(err, operationFields(op)...) }()
	return ls.svc.StartTransaction(ctx, req)
}

func (ls *logService) StartTransfer(ctx context.Context, req *bridge.TransferRequest) (op *bridge.Operation, err error) {
	var fields []zap.Field
	if req != nil {
		fields = append(fields,
			zap.String("to", truncateString(req.To, logValueMaxLen)),
			zap.Float64("amount", req.Amount),
			zap.Bool("has_payload", req.Payload != ""),
		)
	}
	done := ls.logCall("StartTransfer", fields...)
	defer func() { done(err, operationFields(op)...) }()
	return ls.svc.StartTransfer(ctx, req)
}

func (ls *logService) StartSignData(ctx context.Context, req *bridge.SignDataRequest) (op *bridge.Operation, err error) {
	var fields []zap.Field
	if req != nil {
		fields = append(fields,
			zap.Int("data_length", len(req.Data)),
			zap.String("version", req.Version),
		)
	}
	done := ls.logCall("StartSignData", fields...)
	defer func() { done(err, operationFields(op)...) }()
	return ls.svc.StartSignData(ctx, req)
}

// GetOperation is polled; only failures are logged.
func (ls *logService) GetOperation(ctx context.Context, id string) (*bridge.Operation, error) {
	op, err := ls.svc.GetOperation(ctx, id)
	if err != nil {
		ls.logger.Debug("GetOperation failed",
			zap.String("service", serviceName),
			zap.String("operation_id", id),
			zap.Error(err),
		)
	}
	return op, err
}

func (ls *logService) HandleCallback(ctx context.Context, rawURL string) (handled bool, err error) {
	done := ls.logCall("HandleCallback", zap.Int("url_length", len(rawURL)))
	defer func() { done(err, zap.Bool("handled", handled)) }()
	return ls.svc.HandleCallback(ctx, rawURL)
}

func (ls *logService) Disconnect(ctx context.Context) (err error) {
	done := ls.logCall("Disconnect")
	defer func() { done(err) }()
	return ls.svc.Disconnect(ctx)
}

func (ls *logService) Status(ctx context.Context) tonconnect.Status {
	return ls.svc.Status(ctx)
}

func (ls *logService) Wallets(ctx context.Context, platform string) ([]bridge.Wallet, error) {
	return ls.svc.Wallets(ctx, platform)
}

func (ls *logService) SetPreferredWallet(ctx context.Context, name string) (w *bridge.Wallet, err error) {
	done := ls.logCall("SetPreferredWallet", zap.String("wallet", truncateString(name, logValueMaxLen)))
	defer func() { done(err) }()
	return ls.svc.SetPreferredWallet(ctx, name)
}

func (ls *logService) GetBalance(ctx context.Context, address string) (b *explorer.Balance, err error) {
	done := ls.logCall("GetBalance", zap.String("address", truncateString(address, logValueMaxLen)))
	defer func() {
		if b != nil {
			done(err, zap.String("nano", b.Nano))
			return
		}
		done(err)
	}()
	return ls.svc.GetBalance(ctx, address)
}

func (ls *logService) GetTransactionStatus(ctx context.Context, boc string) (st *bridge.TransactionStatus, err error) {
	done := ls.logCall("GetTransactionStatus", zap.String("boc", redactBOC(boc)))
	defer func() {
		if st != nil {
			done(err, zap.String("status", st.Status))
			return
		}
		done(err)
	}()
	return ls.svc.GetTransactionStatus(ctx, boc)
}

func operationFields(op *bridge.Operation) []zap.Field {
	if op == nil {
		return nil
	}
	return []zap.Field{
		zap.String("operation_id", op.ID),
		zap.String("kind", string(op.Kind)),
		zap.String("status", string(op.Status)),
		zap.Int("link_length", len(op.Link)),
	}
}

// truncateString limits string length for logging to prevent log spam
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// redactBOC shows only the edges and size of a serialized transaction
func redactBOC(boc string) string {
	if boc == "" {
		return "<empty>"
	}
	n := len(boc)
	if n > bocDisplaySize {
		return fmt.Sprintf("%s...%s (%d bytes)", boc[:8], boc[n-4:], n)
	}
	return fmt.Sprintf("<%d bytes>", n)
}
