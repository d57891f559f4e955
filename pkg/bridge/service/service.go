package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/bridge"
	"github.com/chainsafe/ton-deeplink/pkg/explorer"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/codec"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/correlator"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/wallets"
)

// DefaultMaxOperations bounds the operation table when Config leaves it unset.
const DefaultMaxOperations = 1024

var ErrOperationNotFound = errors.New("operation not found")

// Client is the part of the deep-link client the host API drives.
//
//go:generate mockery --name Client --output mocks --outpkg mocks --filename mock_client.go --with-expecter
type Client interface {
	Connect(ctx context.Context) (*tonconnect.WalletInfo, error)
	SendTransaction(ctx context.Context, req tonconnect.TransactionRequest) (*tonconnect.TransactionResult, error)
	SignDataString(ctx context.Context, data, version string) (*tonconnect.SignDataResult, error)
	HandleCallback(ctx context.Context, rawURL string) bool
	Disconnect(ctx context.Context) error
	Status() tonconnect.Status
	SetPreferredWallet(name string) error
	PreferredWallet() wallets.Definition
}

// LinkSource hands out the links the client opens.
type LinkSource interface {
	Expect() (<-chan string, func())
}

// Explorer reads chain state.
type Explorer interface {
	GetBalance(ctx context.Context, address string) (*explorer.Balance, error)
	GetTransactionStatus(ctx context.Context, boc string) (explorer.TxStatus, error)
}

// Service defines the interface for the host API business logic
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	StartConnect(ctx context.Context) (*bridge.Operation, error)
	StartTransaction(ctx context.Context, req tonconnect.TransactionRequest) (*bridge.Operation, error)
	StartTransfer(ctx context.Context, req *bridge.TransferRequest) (*bridge.Operation, error)
	StartSignData(ctx context.Context, req *bridge.SignDataRequest) (*bridge.Operation, error)
	GetOperation(ctx context.Context, id string) (*bridge.Operation, error)
	HandleCallback(ctx context.Context, rawURL string) (bool, error)
	Disconnect(ctx context.Context) error
	Status(ctx context.Context) tonconnect.Status
	Wallets(ctx context.Context, platform string) ([]bridge.Wallet, error)
	SetPreferredWallet(ctx context.Context, name string) (*bridge.Wallet, error)
	GetBalance(ctx context.Context, address string) (*explorer.Balance, error)
	GetTransactionStatus(ctx context.Context, boc string) (*bridge.TransactionStatus, error)
}

// Config tunes the host service.
type Config struct {
	MaxOperations int
	Network       string
}

type outcome struct {
	val any
	err error
}

// operation is the mutable record behind a bridge.Operation snapshot.
type operation struct {
	mu   sync.Mutex
	view bridge.Operation
}

func (o *operation) snapshot() *bridge.Operation {
	o.mu.Lock()
	defer o.mu.Unlock()
	v := o.view
	if v.Error != nil {
		e := *v.Error
		v.Error = &e
	}
	return &v
}

func (o *operation) settle(out outcome, now time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.view.UpdatedAt = now
	if out.err != nil {
		o.view.Status = bridge.OperationFailed
		o.view.Error = operationError(out.err)
		return
	}
	o.view.Status = bridge.OperationCompleted
	o.view.Result = out.val
}

type bridgeService struct {
	// base outlives the HTTP request that started an operation.
	base     context.Context
	client   Client
	links    LinkSource
	explorer Explorer
	network  string
	ops      *lru.Cache
	logger   *zap.Logger
	now      func() time.Time

	// startMu serializes the start phase so a link is never attributed to
	// the wrong operation.
	startMu sync.Mutex
}

// NewService creates the host service. Operations keep running until base
// is cancelled, independent of the request that started them.
func NewService(
	base context.Context,
	cfg Config,
	client Client,
	links LinkSource,
	exp Explorer,
	logger *zap.Logger,
) (Service, error) {
	if client == nil || links == nil || exp == nil {
		return nil, errors.New("client, link source and explorer are required")
	}
	size := cfg.MaxOperations
	if size <= 0 {
		size = DefaultMaxOperations
	}
	ops, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create operation table: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bridgeService{
		base:     base,
		client:   client,
		links:    links,
		explorer: exp,
		network:  cfg.Network,
		ops:      ops,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (s *bridgeService) StartConnect(_ context.Context) (*bridge.Operation, error) {
	if st := s.client.Status(); st.Connected {
		return s.completed(correlator.KindConnect, st.Wallet), nil
	}
	return s.start(correlator.KindConnect, func(ctx context.Context) (any, error) {
		return s.client.Connect(ctx)
	})
}

func (s *bridgeService) StartTransaction(_ context.Context, req tonconnect.TransactionRequest) (*bridge.Operation, error) {
	return s.start(correlator.KindTransaction, func(ctx context.Context) (any, error) {
		return s.client.SendTransaction(ctx, req)
	})
}

func (s *bridgeService) StartTransfer(ctx context.Context, req *bridge.TransferRequest) (*bridge.Operation, error) {
	if req == nil {
		return nil, apperrors.BadRequestError(nil, "transfer request is required")
	}
	tx, err := codec.BuildTransferTransaction(req.To, req.Amount,
		codec.WithTransferPayload(req.Payload),
		codec.WithTransferNetwork(s.network),
		codec.WithTransferClock(s.now),
	)
	if err != nil {
		return nil, err
	}
	return s.StartTransaction(ctx, tx)
}

func (s *bridgeService) StartSignData(_ context.Context, req *bridge.SignDataRequest) (*bridge.Operation, error) {
	if req == nil || req.Data == "" {
		return nil, apperrors.BadRequestError(nil, "data is required")
	}
	return s.start(correlator.KindSignData, func(ctx context.Context) (any, error) {
		return s.client.SignDataString(ctx, req.Data, req.Version)
	})
}

func (s *bridgeService) GetOperation(_ context.Context, id string) (*bridge.Operation, error) {
	v, ok := s.ops.Get(id)
	if !ok {
		return nil, apperrors.ResourceNotFoundError(ErrOperationNotFound, "operation not found")
	}
	return v.(*operation).snapshot(), nil
}

func (s *bridgeService) HandleCallback(ctx context.Context, rawURL string) (bool, error) {
	if strings.TrimSpace(rawURL) == "" {
		return false, apperrors.BadRequestError(nil, "url is required")
	}
	return s.client.HandleCallback(ctx, rawURL), nil
}

func (s *bridgeService) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *bridgeService) Status(_ context.Context) tonconnect.Status {
	return s.client.Status()
}

func (s *bridgeService) Wallets(_ context.Context, platform string) ([]bridge.Wallet, error) {
	var defs []wallets.Definition
	switch p := tonconnect.Platform(strings.ToLower(platform)); p {
	case "":
		defs = wallets.All()
	case tonconnect.PlatformIOS, tonconnect.PlatformAndroid, tonconnect.PlatformWeb:
		defs = wallets.FilterByPlatform(p)
	default:
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown platform %q", platform))
	}
	out := make([]bridge.Wallet, 0, len(defs))
	for _, d := range defs {
		out = append(out, bridge.WalletFrom(d))
	}
	return out, nil
}

func (s *bridgeService) SetPreferredWallet(_ context.Context, name string) (*bridge.Wallet, error) {
	if err := s.client.SetPreferredWallet(name); err != nil {
		return nil, err
	}
	w := bridge.WalletFrom(s.client.PreferredWallet())
	return &w, nil
}

// GetBalance reads the balance of address, or of the connected wallet when
// address is empty.
func (s *bridgeService) GetBalance(ctx context.Context, address string) (*explorer.Balance, error) {
	if address == "" {
		st := s.client.Status()
		if !st.Connected {
			return nil, apperrors.NotConnectedError(nil)
		}
		address = st.Wallet.Address
	}
	return s.explorer.GetBalance(ctx, address)
}

func (s *bridgeService) GetTransactionStatus(ctx context.Context, boc string) (*bridge.TransactionStatus, error) {
	status, err := s.explorer.GetTransactionStatus(ctx, boc)
	if err != nil {
		return nil, err
	}
	return &bridge.TransactionStatus{BOC: boc, Status: string(status)}, nil
}

// start runs op in the background and returns once it has either opened its
// deep link or finished without one.
func (s *bridgeService) start(kind correlator.Kind, op func(ctx context.Context) (any, error)) (*bridge.Operation, error) {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	links, withdraw := s.links.Expect()
	defer withdraw()

	done := make(chan outcome, 1)
	go func() {
		v, err := op(s.base)
		done <- outcome{val: v, err: err}
	}()

	select {
	case link := <-links:
		return s.track(kind, link, done), nil
	case out := <-done:
		// a fast wallet may have answered after the link went out
		select {
		case link := <-links:
			replay := make(chan outcome, 1)
			replay <- out
			return s.track(kind, link, replay), nil
		default:
		}
		if out.err != nil {
			return nil, out.err
		}
		return s.completed(kind, out.val), nil
	}
}

func (s *bridgeService) track(kind correlator.Kind, link string, done <-chan outcome) *bridge.Operation {
	now := s.now()
	op := &operation{view: bridge.Operation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    bridge.OperationPending,
		Link:      link,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	if evicted := s.ops.Add(op.view.ID, op); evicted {
		s.logger.Warn("operation table full, oldest entry evicted")
	}
	snap := op.snapshot()

	go func() {
		out := <-done
		op.settle(out, s.now())
		if out.err != nil {
			s.logger.Info("operation failed",
				zap.String("operation_id", snap.ID),
				zap.String("kind", string(kind)),
				zap.String("error_code", string(apperrors.CodeOf(out.err))),
			)
			return
		}
		s.logger.Info("operation completed",
			zap.String("operation_id", snap.ID),
			zap.String("kind", string(kind)),
		)
	}()
	return snap
}

func (s *bridgeService) completed(kind correlator.Kind, val any) *bridge.Operation {
	now := s.now()
	op := &operation{view: bridge.Operation{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    bridge.OperationCompleted,
		Result:    val,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	s.ops.Add(op.view.ID, op)
	return op.snapshot()
}

func operationError(err error) *bridge.OperationError {
	msg := err.Error()
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		msg = svcErr.Message
	}
	return &bridge.OperationError{
		Code:     string(apperrors.CodeOf(err)),
		Message:  msg,
		Recovery: apperrors.RecoveryOf(err),
	}
}
