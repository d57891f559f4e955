package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/bridge"
	"github.com/chainsafe/ton-deeplink/pkg/bridge/service/mocks"
	"github.com/chainsafe/ton-deeplink/pkg/explorer"
	"github.com/chainsafe/ton-deeplink/pkg/platform"
	"github.com/chainsafe/ton-deeplink/pkg/storage/memstore"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
	tcclient "github.com/chainsafe/ton-deeplink/pkg/tonconnect/client"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/codec"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/correlator"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/wallets"
)

const (
	testScheme    = "myapp"
	testAddress   = "EQD0vdSA_NedR9uvbgN9EikRX-suesDxGeFg69XQMavfLqIo"
	testPublicKey = "82a0b2543d06fec0aac952e9ec738be56ab1b6027fc0c1aa817ae14b4d1ed2fb"
	waitTimeout   = 2 * time.Second
)

type explorerStub struct {
	GetBalanceFunc           func(ctx context.Context, address string) (*explorer.Balance, error)
	GetTransactionStatusFunc func(ctx context.Context, boc string) (explorer.TxStatus, error)
}

func (e *explorerStub) GetBalance(ctx context.Context, address string) (*explorer.Balance, error) {
	if e.GetBalanceFunc == nil {
		return nil, errors.New("GetBalance not stubbed")
	}
	return e.GetBalanceFunc(ctx, address)
}

func (e *explorerStub) GetTransactionStatus(ctx context.Context, boc string) (explorer.TxStatus, error) {
	if e.GetTransactionStatusFunc == nil {
		return explorer.TxStatusUnknown, nil
	}
	return e.GetTransactionStatusFunc(ctx, boc)
}

type fixedRandom struct{}

func (fixedRandom) RandomBytes(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// newTestService wires the service to a real deep-link client over a relay.
func newTestService(t *testing.T, cfg Config, relayOpts ...platform.RelayOption) (Service, *platform.Relay) {
	t.Helper()
	relay := platform.NewRelay(relayOpts...)
	c, err := tcclient.New(&tcclient.Config{
		ManifestURL:  "https://example.com/tonconnect-manifest.json",
		ReturnScheme: testScheme,
	}, relay, memstore.New(), fixedRandom{})
	if err != nil {
		t.Fatalf("client.New() failed: %v", err)
	}

	base, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		c.Destroy()
	})

	svc, err := NewService(base, cfg, c, relay, &explorerStub{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return svc, relay
}

func callbackURL(t *testing.T, payload any) string {
	t.Helper()
	enc, err := codec.EncodeBase64URL(payload)
	if err != nil {
		t.Fatalf("EncodeBase64URL() failed: %v", err)
	}
	return testScheme + "://tonconnect?" + enc
}

func connectPayload() map[string]any {
	return map[string]any{
		"session":   "s1",
		"name":      "Tonkeeper",
		"appName":   "tonkeeper",
		"version":   "3.4.0",
		"platform":  "ios",
		"address":   testAddress,
		"publicKey": testPublicKey,
	}
}

// waitSettled polls the operation table until id leaves the pending state.
func waitSettled(t *testing.T, svc Service, id string) *bridge.Operation {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		op, err := svc.GetOperation(context.Background(), id)
		if err != nil {
			t.Fatalf("GetOperation() failed: %v", err)
		}
		if op.Done() {
			return op
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("operation %s did not settle", id)
	return nil
}

func deliver(t *testing.T, svc Service, payload any) {
	t.Helper()
	handled, err := svc.HandleCallback(context.Background(), callbackURL(t, payload))
	if err != nil {
		t.Fatalf("HandleCallback() failed: %v", err)
	}
	if !handled {
		t.Fatal("callback was not handled")
	}
}

func connect(t *testing.T, svc Service) {
	t.Helper()
	op, err := svc.StartConnect(context.Background())
	if err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}
	deliver(t, svc, connectPayload())
	if got := waitSettled(t, svc, op.ID); got.Status != bridge.OperationCompleted {
		t.Fatalf("connect did not complete: %+v", got)
	}
}

func TestNewService_RequiresDependencies(t *testing.T) {
	if _, err := NewService(context.Background(), Config{}, nil, platform.NewRelay(), &explorerStub{}, nil); err == nil {
		t.Fatal("expected error for missing client")
	}
}

func TestStartConnect_PendingThenCompleted(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	op, err := svc.StartConnect(context.Background())
	if err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}
	if op.Status != bridge.OperationPending || op.Kind != correlator.KindConnect {
		t.Fatalf("unexpected operation %+v", op)
	}
	if !strings.HasPrefix(op.Link, wallets.Default().UniversalLink+"?") {
		t.Fatalf("unexpected link %q", op.Link)
	}

	deliver(t, svc, connectPayload())

	got := waitSettled(t, svc, op.ID)
	if got.Status != bridge.OperationCompleted {
		t.Fatalf("expected completed, got %+v", got)
	}
	w, ok := got.Result.(*tonconnect.WalletInfo)
	if !ok || w.Address != testAddress {
		t.Fatalf("unexpected result %#v", got.Result)
	}
	if st := svc.Status(context.Background()); !st.Connected {
		t.Fatal("expected connected status")
	}
}

func TestStartConnect_AlreadyConnected(t *testing.T) {
	svc, relay := newTestService(t, Config{})
	connect(t, svc)
	opened := relay.OpenedCount()

	op, err := svc.StartConnect(context.Background())
	if err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}
	if op.Status != bridge.OperationCompleted || op.Link != "" {
		t.Fatalf("expected an immediately completed operation, got %+v", op)
	}
	if relay.OpenedCount() != opened {
		t.Fatal("no link should be opened when already connected")
	}
}

func TestStartConnect_InProgress(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	if _, err := svc.StartConnect(context.Background()); err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}
	_, err := svc.StartConnect(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeOperationInProgress) {
		t.Fatalf("expected OPERATION_IN_PROGRESS, got %v", err)
	}
}

func TestStartConnect_LinkingFailure(t *testing.T) {
	svc, _ := newTestService(t, Config{}, platform.WithRefuseOpen())
	_, err := svc.StartConnect(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeLinkingFailed) {
		t.Fatalf("expected LINKING_FAILED, got %v", err)
	}
}

func TestStartConnect_UserRejected(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	op, err := svc.StartConnect(context.Background())
	if err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}
	deliver(t, svc, map[string]any{"error": map[string]any{"code": 300, "message": "User declined"}})

	got := waitSettled(t, svc, op.ID)
	if got.Status != bridge.OperationFailed || got.Error == nil {
		t.Fatalf("expected failed operation, got %+v", got)
	}
	if got.Error.Code != string(apperrors.CodeUserRejected) {
		t.Fatalf("expected USER_REJECTED, got %+v", got.Error)
	}
}

func TestStartTransfer(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	_, err := svc.StartTransfer(context.Background(), &bridge.TransferRequest{To: testAddress, Amount: 1.5})
	if !apperrors.IsCode(err, apperrors.CodeNotConnected) {
		t.Fatalf("expected NOT_CONNECTED, got %v", err)
	}
	_, err = svc.StartTransfer(context.Background(), &bridge.TransferRequest{To: "nope", Amount: 1})
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected data error for bad address, got %v", err)
	}
	if _, err = svc.StartTransfer(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}

	connect(t, svc)
	op, err := svc.StartTransfer(context.Background(), &bridge.TransferRequest{To: testAddress, Amount: 1.5})
	if err != nil {
		t.Fatalf("StartTransfer() failed: %v", err)
	}
	if op.Kind != correlator.KindTransaction || !strings.Contains(op.Link, codec.SendTransactionPath) {
		t.Fatalf("unexpected operation %+v", op)
	}

	deliver(t, svc, map[string]any{"boc": "te6ccgEBAQEAAgAAAA==", "signature": "c2ln"})
	got := waitSettled(t, svc, op.ID)
	res, ok := got.Result.(*tonconnect.TransactionResult)
	if got.Status != bridge.OperationCompleted || !ok || res.BOC != "te6ccgEBAQEAAgAAAA==" {
		t.Fatalf("unexpected settled operation %+v", got)
	}
}

func TestStartSignData(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	if _, err := svc.StartSignData(context.Background(), &bridge.SignDataRequest{}); !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected data error for empty data, got %v", err)
	}

	connect(t, svc)
	op, err := svc.StartSignData(context.Background(), &bridge.SignDataRequest{Data: "hello"})
	if err != nil {
		t.Fatalf("StartSignData() failed: %v", err)
	}
	if !strings.Contains(op.Link, codec.SignDataPath) {
		t.Fatalf("unexpected link %q", op.Link)
	}

	deliver(t, svc, map[string]any{"signature": "c2ln", "timestamp": 1700000000})
	got := waitSettled(t, svc, op.ID)
	res, ok := got.Result.(*tonconnect.SignDataResult)
	if !ok || res.Signature != "c2ln" || res.Timestamp != 1700000000 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestPendingOperationCancelledWithService(t *testing.T) {
	relay := platform.NewRelay()
	c, err := tcclient.New(&tcclient.Config{
		ManifestURL:  "https://example.com/tonconnect-manifest.json",
		ReturnScheme: testScheme,
	}, relay, memstore.New(), fixedRandom{})
	if err != nil {
		t.Fatalf("client.New() failed: %v", err)
	}
	t.Cleanup(c.Destroy)

	base, cancel := context.WithCancel(context.Background())
	svc, err := NewService(base, Config{}, c, relay, &explorerStub{}, nil)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	op, err := svc.StartConnect(context.Background())
	if err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}

	cancel()
	got := waitSettled(t, svc, op.ID)
	if got.Error == nil || got.Error.Code != string(apperrors.CodeCancelled) {
		t.Fatalf("expected CANCELLED, got %+v", got)
	}
}

func TestGetOperation_NotFound(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	_, err := svc.GetOperation(context.Background(), "missing")
	if !errors.Is(err, ErrOperationNotFound) || !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOperationTableEvictsOldest(t *testing.T) {
	client := mocks.NewClient(t)
	client.EXPECT().Status().Return(tonconnect.Connected(&tonconnect.WalletInfo{Address: testAddress}))

	svc, err := NewService(context.Background(), Config{MaxOperations: 1}, client, platform.NewRelay(), &explorerStub{}, nil)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	first, err := svc.StartConnect(context.Background())
	if err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}
	second, err := svc.StartConnect(context.Background())
	if err != nil {
		t.Fatalf("StartConnect() failed: %v", err)
	}

	if _, err := svc.GetOperation(context.Background(), first.ID); err == nil {
		t.Fatal("expected the oldest operation to be evicted")
	}
	if _, err := svc.GetOperation(context.Background(), second.ID); err != nil {
		t.Fatalf("newest operation missing: %v", err)
	}
}

func TestHandleCallback(t *testing.T) {
	client := mocks.NewClient(t)
	client.EXPECT().HandleCallback(mock.Anything, "myapp://tonconnect?e30").Return(false)

	svc, err := NewService(context.Background(), Config{}, client, platform.NewRelay(), &explorerStub{}, nil)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	if _, err := svc.HandleCallback(context.Background(), "  "); !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected data error for empty url, got %v", err)
	}
	handled, err := svc.HandleCallback(context.Background(), "myapp://tonconnect?e30")
	if err != nil || handled {
		t.Fatalf("expected unhandled callback, got %v %v", handled, err)
	}
}

func TestWallets(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	all, err := svc.Wallets(context.Background(), "")
	if err != nil {
		t.Fatalf("Wallets() failed: %v", err)
	}
	if len(all) != len(wallets.All()) || all[0].Name != wallets.Default().Name {
		t.Fatalf("unexpected wallet list %+v", all)
	}

	web, err := svc.Wallets(context.Background(), "WEB")
	if err != nil {
		t.Fatalf("Wallets(web) failed: %v", err)
	}
	if len(web) != len(wallets.FilterByPlatform(tonconnect.PlatformWeb)) {
		t.Fatalf("unexpected web wallets %+v", web)
	}

	if _, err := svc.Wallets(context.Background(), "symbian"); !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected data error for unknown platform, got %v", err)
	}
}

func TestSetPreferredWallet(t *testing.T) {
	def, _ := wallets.Lookup("tonhub")
	client := mocks.NewClient(t)
	client.EXPECT().SetPreferredWallet("tonhub").Return(nil)
	client.EXPECT().PreferredWallet().Return(def)
	client.EXPECT().SetPreferredWallet("nokia").Return(apperrors.UnknownWalletError(nil, "wallet \"nokia\" is not supported"))

	svc, err := NewService(context.Background(), Config{}, client, platform.NewRelay(), &explorerStub{}, nil)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}

	w, err := svc.SetPreferredWallet(context.Background(), "tonhub")
	if err != nil {
		t.Fatalf("SetPreferredWallet() failed: %v", err)
	}
	if w.AppName != "tonhub" {
		t.Fatalf("unexpected wallet %+v", w)
	}
	if _, err := svc.SetPreferredWallet(context.Background(), "nokia"); !apperrors.IsCode(err, apperrors.CodeUnknownWallet) {
		t.Fatalf("expected UNKNOWN_WALLET, got %v", err)
	}
}

func TestGetBalance(t *testing.T) {
	client := mocks.NewClient(t)
	client.EXPECT().Status().Return(tonconnect.Disconnected()).Once()
	client.EXPECT().Status().Return(tonconnect.Connected(&tonconnect.WalletInfo{Address: testAddress})).Once()

	var asked []string
	exp := &explorerStub{
		GetBalanceFunc: func(_ context.Context, address string) (*explorer.Balance, error) {
			asked = append(asked, address)
			return &explorer.Balance{Address: address, Nano: "1500000000", TON: decimal.RequireFromString("1.5")}, nil
		},
	}
	svc, err := NewService(context.Background(), Config{}, client, platform.NewRelay(), exp, nil)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}

	if _, err := svc.GetBalance(context.Background(), ""); !apperrors.IsCode(err, apperrors.CodeNotConnected) {
		t.Fatalf("expected NOT_CONNECTED, got %v", err)
	}
	b, err := svc.GetBalance(context.Background(), "")
	if err != nil {
		t.Fatalf("GetBalance() failed: %v", err)
	}
	if b.Nano != "1500000000" {
		t.Fatalf("unexpected balance %+v", b)
	}
	if _, err := svc.GetBalance(context.Background(), "0:abc"); err != nil {
		t.Fatalf("GetBalance(address) failed: %v", err)
	}
	if len(asked) != 2 || asked[0] != testAddress || asked[1] != "0:abc" {
		t.Fatalf("unexpected explorer calls %v", asked)
	}
}

func TestGetTransactionStatus(t *testing.T) {
	exp := &explorerStub{
		GetTransactionStatusFunc: func(_ context.Context, boc string) (explorer.TxStatus, error) {
			if boc == "bad" {
				return "", apperrors.BadRequestError(nil, "boc is not base64")
			}
			return explorer.TxStatusUnknown, nil
		},
	}
	svc, err := NewService(context.Background(), Config{}, mocks.NewClient(t), platform.NewRelay(), exp, nil)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}

	st, err := svc.GetTransactionStatus(context.Background(), "te6cc")
	if err != nil {
		t.Fatalf("GetTransactionStatus() failed: %v", err)
	}
	if st.Status != string(explorer.TxStatusUnknown) || st.BOC != "te6cc" {
		t.Fatalf("unexpected status %+v", st)
	}
	if _, err := svc.GetTransactionStatus(context.Background(), "bad"); err == nil {
		t.Fatal("expected error")
	}
}
