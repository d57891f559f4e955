package correlator

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
)

func waitWithin(t *testing.T, op *Operation, d time.Duration) (any, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	select {
	case <-op.Done():
	case <-ctx.Done():
		t.Fatalf("operation %s did not settle within %s", op.Kind, d)
	}
	return op.Result()
}

func TestBegin_SingleFlightPerKind(t *testing.T) {
	c := New(Timeouts{})

	if _, err := c.Begin(KindConnect); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	_, err := c.Begin(KindConnect)
	if !errors.Is(err, ErrInProgress) {
		t.Fatalf("expected ErrInProgress, got %v", err)
	}
	if !apperrors.IsCode(err, apperrors.CodeOperationInProgress) {
		t.Fatalf("expected OPERATION_IN_PROGRESS, got %v", err)
	}

	if _, err := c.Begin(KindTransaction); err != nil {
		t.Fatalf("other kinds must be independent: %v", err)
	}
	c.DiscardAll()
}

func TestResolve_ExactlyOnce(t *testing.T) {
	c := New(Timeouts{})
	op, err := c.Begin(KindTransaction)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	if !c.Resolve(KindTransaction, "first") {
		t.Fatal("Resolve() on pending operation returned false")
	}
	if c.Resolve(KindTransaction, "second") {
		t.Fatal("duplicate Resolve() must be a no-op")
	}
	if c.Reject(KindTransaction, errors.New("late")) {
		t.Fatal("late Reject() must be a no-op")
	}

	v, err := op.Wait(context.Background())
	if err != nil || v != "first" {
		t.Fatalf("Wait() = %v, %v", v, err)
	}
	if c.IsPending(KindTransaction) {
		t.Fatal("slot not released after resolve")
	}
	if _, err := c.Begin(KindTransaction); err != nil {
		t.Fatalf("Begin() after resolve failed: %v", err)
	}
	c.DiscardAll()
}

func TestRejectAndResolve_NoPending(t *testing.T) {
	c := New(Timeouts{})
	if c.Resolve(KindConnect, 1) {
		t.Fatal("Resolve() without pending operation returned true")
	}
	if c.Reject(KindSignData, errors.New("x")) {
		t.Fatal("Reject() without pending operation returned true")
	}
	if kinds := c.RejectAll(errors.New("x")); len(kinds) != 0 {
		t.Fatalf("RejectAll() settled %v", kinds)
	}
}

func TestTimeout_FiresOnceAfterDeadline(t *testing.T) {
	const timeout = 50 * time.Millisecond
	c := New(Timeouts{Connect: timeout})

	start := time.Now()
	op, err := c.Begin(KindConnect)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	_, err = waitWithin(t, op, 2*time.Second)
	elapsed := time.Since(start)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !apperrors.IsCode(err, apperrors.CodeConnectionTimeout) {
		t.Fatalf("expected CONNECTION_TIMEOUT, got %v", err)
	}
	if elapsed < timeout {
		t.Fatalf("timed out after %s, before the %s deadline", elapsed, timeout)
	}

	if c.Resolve(KindConnect, "late") {
		t.Fatal("late callback after timeout must be a no-op")
	}
	if _, err2 := op.Wait(context.Background()); err2 != err {
		t.Fatalf("outcome changed after timeout: %v", err2)
	}
}

func TestTimeout_CodesPerKind(t *testing.T) {
	c := New(Timeouts{Transaction: 10 * time.Millisecond, SignData: 10 * time.Millisecond})

	tx, _ := c.Begin(KindTransaction)
	sd, _ := c.Begin(KindSignData)

	if _, err := waitWithin(t, tx, time.Second); !apperrors.IsCode(err, apperrors.CodeTransactionTimeout) {
		t.Fatalf("expected TRANSACTION_TIMEOUT, got %v", err)
	}
	if _, err := waitWithin(t, sd, time.Second); !apperrors.IsCode(err, apperrors.CodeSignDataTimeout) {
		t.Fatalf("expected SIGN_DATA_TIMEOUT, got %v", err)
	}
}

func TestResolve_StopsTimer(t *testing.T) {
	c := New(Timeouts{Connect: 20 * time.Millisecond})
	op, _ := c.Begin(KindConnect)
	c.Resolve(KindConnect, "ok")

	time.Sleep(50 * time.Millisecond)
	v, err := op.Result()
	if err != nil || v != "ok" {
		t.Fatalf("timer overrode resolution: %v, %v", v, err)
	}
}

func TestRejectAll(t *testing.T) {
	c := New(Timeouts{})
	connect, _ := c.Begin(KindConnect)
	signData, _ := c.Begin(KindSignData)

	rejection := apperrors.UserRejectedError(nil, "declined")
	kinds := c.RejectAll(rejection)
	if len(kinds) != 2 || kinds[0] != KindConnect || kinds[1] != KindSignData {
		t.Fatalf("RejectAll() = %v", kinds)
	}
	for _, op := range []*Operation{connect, signData} {
		if _, err := op.Wait(context.Background()); !apperrors.IsCode(err, apperrors.CodeUserRejected) {
			t.Fatalf("expected USER_REJECTED for %s, got %v", op.Kind, err)
		}
	}
}

func TestSignatureKind_Priority(t *testing.T) {
	c := New(Timeouts{})
	if _, ok := c.SignatureKind(); ok {
		t.Fatal("expected no signature kind when idle")
	}

	_, _ = c.Begin(KindSignData)
	if k, ok := c.SignatureKind(); !ok || k != KindSignData {
		t.Fatalf("SignatureKind() = %v, %v", k, ok)
	}

	_, _ = c.Begin(KindTransaction)
	if k, ok := c.SignatureKind(); !ok || k != KindTransaction {
		t.Fatalf("transaction must take priority, got %v", k)
	}
	c.DiscardAll()
}

func TestWait_ContextCancelCancelsOperation(t *testing.T) {
	c := New(Timeouts{})
	op, _ := c.Begin(KindTransaction)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := op.Wait(ctx)
	if !errors.Is(err, ErrCancelled) || !apperrors.IsCode(err, apperrors.CodeCancelled) {
		t.Fatalf("expected CANCELLED, got %v", err)
	}
	if c.IsPending(KindTransaction) {
		t.Fatal("cancelled operation still pending")
	}
}

func TestWait_SettledBeforeCancelKeepsOutcome(t *testing.T) {
	c := New(Timeouts{})
	op, _ := c.Begin(KindConnect)
	c.Resolve(KindConnect, "wallet")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := op.Wait(ctx)
	if err != nil || v != "wallet" {
		t.Fatalf("Wait() = %v, %v", v, err)
	}
}

func TestDiscardAll(t *testing.T) {
	c := New(Timeouts{Connect: 20 * time.Millisecond})
	op, _ := c.Begin(KindConnect)

	c.DiscardAll()
	if _, err := op.Wait(context.Background()); !apperrors.IsCode(err, apperrors.CodeClientDestroyed) {
		t.Fatalf("expected CLIENT_DESTROYED, got %v", err)
	}
	if c.Resolve(KindConnect, "late") {
		t.Fatal("resolve after discard must be a no-op")
	}
	if _, err := c.Begin(KindConnect); !apperrors.IsCode(err, apperrors.CodeClientDestroyed) {
		t.Fatalf("expected CLIENT_DESTROYED from Begin, got %v", err)
	}

	time.Sleep(40 * time.Millisecond)
	if _, err := op.Result(); !apperrors.IsCode(err, apperrors.CodeClientDestroyed) {
		t.Fatalf("stopped timer settled the operation: %v", err)
	}
}

func TestAwait(t *testing.T) {
	c := New(Timeouts{})

	op, _ := c.Begin(KindConnect)
	c.Resolve(KindConnect, 42)
	if v, err := Await[int](context.Background(), op); err != nil || v != 42 {
		t.Fatalf("Await[int]() = %v, %v", v, err)
	}

	op, _ = c.Begin(KindConnect)
	c.Resolve(KindConnect, "not an int")
	if _, err := Await[int](context.Background(), op); !apperrors.IsCode(err, apperrors.CodeProtocolError) {
		t.Fatalf("expected PROTOCOL_ERROR, got %v", err)
	}
}

func TestBegin_IDGeneratorFailure(t *testing.T) {
	c := New(Timeouts{}, WithIDGenerator(func() (string, error) { return "", errors.New("no entropy") }))
	if _, err := c.Begin(KindConnect); err == nil {
		t.Fatal("expected error when the id generator fails")
	}
	if c.IsPending(KindConnect) {
		t.Fatal("failed Begin must not leave a pending operation")
	}
}

func TestTimeoutsFor(t *testing.T) {
	var zero Timeouts
	for _, k := range Kinds {
		if zero.For(k) != DefaultTimeout {
			t.Fatalf("expected default timeout for %s", k)
		}
	}
	custom := Timeouts{SignData: time.Second}
	if custom.For(KindSignData) != time.Second {
		t.Fatal("custom sign-data timeout ignored")
	}
}

func TestClaim_BlocksCompetingSettlement(t *testing.T) {
	c := New(Timeouts{Connect: 30 * time.Millisecond})
	op, err := c.Begin(KindConnect)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	claimed, ok := c.Claim(KindConnect)
	if !ok || claimed != op {
		t.Fatalf("Claim() = %v, %v", claimed, ok)
	}
	if _, ok := c.Claim(KindConnect); ok {
		t.Fatal("second Claim() must fail")
	}
	if c.Resolve(KindConnect, "other") || c.Reject(KindConnect, errors.New("other")) {
		t.Fatal("claimed operation settled by another caller")
	}
	if kinds := c.RejectAll(errors.New("wallet error")); len(kinds) != 0 {
		t.Fatalf("RejectAll() settled claimed operation: %v", kinds)
	}
	if op.Abort(errors.New("cancel")) {
		t.Fatal("claimed operation aborted")
	}
	if _, err := c.Begin(KindConnect); !errors.Is(err, ErrInProgress) {
		t.Fatalf("slot must stay occupied while claimed, got %v", err)
	}

	time.Sleep(60 * time.Millisecond)
	select {
	case <-op.Done():
		t.Fatal("timer settled a claimed operation")
	default:
	}

	if !c.Complete(op, "wallet", nil) {
		t.Fatal("Complete() on claimed operation returned false")
	}
	if c.Complete(op, "again", nil) {
		t.Fatal("second Complete() must be a no-op")
	}
	v, err := waitWithin(t, op, time.Second)
	if err != nil || v != "wallet" {
		t.Fatalf("result = %v, %v", v, err)
	}
	if c.IsPending(KindConnect) {
		t.Fatal("slot not released after Complete()")
	}
}

func TestClaim_CancelledWaiterGetsClaimedOutcome(t *testing.T) {
	c := New(Timeouts{})
	op, _ := c.Begin(KindTransaction)
	claimed, ok := c.Claim(KindTransaction)
	if !ok {
		t.Fatal("Claim() failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	var (
		v   any
		err error
	)
	go func() {
		v, err = op.Wait(ctx)
		close(done)
	}()

	c.Complete(claimed, "signed", nil)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return")
	}
	if err != nil || v != "signed" {
		t.Fatalf("Wait() = %v, %v", v, err)
	}
}

func TestClaimSignature_Priority(t *testing.T) {
	c := New(Timeouts{})
	if _, ok := c.ClaimSignature(); ok {
		t.Fatal("nothing pending")
	}
	sd, _ := c.Begin(KindSignData)
	tx, _ := c.Begin(KindTransaction)

	op, ok := c.ClaimSignature()
	if !ok || op != tx {
		t.Fatalf("expected the transaction to be claimed, got %v", op)
	}
	if k, ok := c.SignatureKind(); !ok || k != KindSignData {
		t.Fatalf("SignatureKind() = %v, %v", k, ok)
	}
	op, ok = c.ClaimSignature()
	if !ok || op != sd {
		t.Fatalf("expected the sign-data request to be claimed, got %v", op)
	}
	if _, ok := c.ClaimSignature(); ok {
		t.Fatal("both operations are claimed")
	}
	c.DiscardAll()
}

func TestDiscardAll_SettlesClaimed(t *testing.T) {
	c := New(Timeouts{})
	op, _ := c.Begin(KindConnect)
	if _, ok := c.Claim(KindConnect); !ok {
		t.Fatal("Claim() failed")
	}

	c.DiscardAll()
	if _, err := waitWithin(t, op, time.Second); !apperrors.IsCode(err, apperrors.CodeClientDestroyed) {
		t.Fatalf("expected CLIENT_DESTROYED, got %v", err)
	}
	if c.Complete(op, "late", nil) {
		t.Fatal("Complete() after discard must be a no-op")
	}
}
