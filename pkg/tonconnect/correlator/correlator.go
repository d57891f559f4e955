// Package correlator matches inbound wallet callbacks to the operation that
// issued the outbound deep link. At most one operation per kind is pending at
// any time, and each operation settles exactly once: by a callback, by its
// timer, by cancellation, or by being discarded on shutdown. A callback that
// needs to do work before settling claims the operation first; only its
// claimant or a shutdown can settle a claimed operation.
package correlator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/internal/metrics"
	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
)

// Kind identifies an operation slot.
type Kind string

const (
	KindConnect     Kind = "connect"
	KindTransaction Kind = "transaction"
	KindSignData    Kind = "sign-data"
)

// Kinds lists every slot in settlement order.
var Kinds = []Kind{KindConnect, KindTransaction, KindSignData}

// DefaultTimeout applies to every kind unless overridden.
const DefaultTimeout = 300 * time.Second

var (
	ErrInProgress = errors.New("operation already in progress")
	ErrTimeout    = errors.New("operation timed out")
	ErrCancelled  = errors.New("operation cancelled")
	ErrDiscarded  = errors.New("operation discarded")
)

// Timeouts holds the per-kind deadlines. Zero values fall back to DefaultTimeout.
type Timeouts struct {
	Connect     time.Duration
	Transaction time.Duration
	SignData    time.Duration
}

// For returns the timeout configured for kind.
func (t Timeouts) For(kind Kind) time.Duration {
	var d time.Duration
	switch kind {
	case KindConnect:
		d = t.Connect
	case KindTransaction:
		d = t.Transaction
	case KindSignData:
		d = t.SignData
	}
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

type settings struct {
	logger *zap.Logger
	newID  func() (string, error)
	now    func() time.Time
}

// Option configures the Correlator.
type Option func(*settings)

// WithLogger sets a custom logger for the correlator.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithIDGenerator replaces the operation id source.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *settings) { s.newID = fn }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger: zap.NewNop(),
		newID:  func() (string, error) { return uuid.NewString(), nil },
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Correlator owns the pending operation table.
type Correlator struct {
	mu       sync.Mutex
	timeouts Timeouts
	pending  map[Kind]*Operation
	closed   bool

	logger *zap.Logger
	newID  func() (string, error)
	now    func() time.Time
}

// New creates a Correlator with the given timeouts.
func New(timeouts Timeouts, opts ...Option) *Correlator {
	s := applyOptions(opts)
	return &Correlator{
		timeouts: timeouts,
		pending:  make(map[Kind]*Operation),
		logger:   s.logger,
		newID:    s.newID,
		now:      s.now,
	}
}

// Begin registers a pending operation of kind and arms its timer.
// It fails with OPERATION_IN_PROGRESS if one is already pending.
func (c *Correlator) Begin(kind Kind) (*Operation, error) {
	id, err := c.newID()
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("generate operation id: %w", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, apperrors.DestroyedError(ErrDiscarded)
	}
	if existing := c.pending[kind]; existing != nil {
		return nil, apperrors.InProgressError(ErrInProgress,
			fmt.Sprintf("%s already in progress (operation %s)", kind, existing.ID))
	}

	op := &Operation{
		ID:        id,
		Kind:      kind,
		StartedAt: c.now(),
		done:      make(chan struct{}),
		c:         c,
	}
	timeout := c.timeouts.For(kind)
	op.timer = time.AfterFunc(timeout, func() { c.expire(op) })
	c.pending[kind] = op

	metrics.OperationsStarted.WithLabelValues(string(kind)).Inc()
	metrics.PendingOperations.WithLabelValues(string(kind)).Inc()
	c.logger.Debug("operation pending",
		zap.String("kind", string(kind)),
		zap.String("operation_id", id),
		zap.Duration("timeout", timeout))
	return op, nil
}

// Resolve settles the pending operation of kind with v.
// It reports false, doing nothing, when no unclaimed operation of kind is pending.
func (c *Correlator) Resolve(kind Kind, v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	op := c.openLocked(kind)
	if op == nil {
		return false
	}
	c.settleLocked(op, v, nil)
	return true
}

// Reject settles the pending operation of kind with err.
// It reports false, doing nothing, when no unclaimed operation of kind is pending.
func (c *Correlator) Reject(kind Kind, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	op := c.openLocked(kind)
	if op == nil {
		return false
	}
	c.settleLocked(op, nil, err)
	return true
}

// Claim reserves the pending operation of kind for the caller and stops its
// timer. The slot stays occupied until the caller settles the operation with
// Complete. It reports false when no unclaimed operation of kind is pending.
func (c *Correlator) Claim(kind Kind) (*Operation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	op := c.openLocked(kind)
	if op == nil {
		return nil, false
	}
	c.claimLocked(op)
	return op, true
}

// ClaimSignature claims the operation a {boc, signature} callback belongs to.
// The wire format carries no tag, so a pending transaction wins over a
// pending sign-data request.
func (c *Correlator) ClaimSignature() (*Operation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, kind := range []Kind{KindTransaction, KindSignData} {
		if op := c.openLocked(kind); op != nil {
			c.claimLocked(op)
			return op, true
		}
	}
	return nil, false
}

// Complete settles a claimed operation. It reports false when op was already
// settled, which only happens if the correlator discarded it meanwhile.
func (c *Correlator) Complete(op *Operation, v any, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if op.settled {
		return false
	}
	c.settleLocked(op, v, err)
	return true
}

// RejectAll rejects every pending operation with err and returns the kinds it settled.
func (c *Correlator) RejectAll(err error) []Kind {
	c.mu.Lock()
	defer c.mu.Unlock()

	var settled []Kind
	for _, kind := range Kinds {
		if op := c.openLocked(kind); op != nil {
			c.settleLocked(op, nil, err)
			settled = append(settled, kind)
		}
	}
	return settled
}

// IsPending reports whether an operation of kind is pending.
func (c *Correlator) IsPending(kind Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[kind] != nil
}

// SignatureKind reports which operation a {boc, signature} callback would be
// routed to, using the same priority as ClaimSignature.
func (c *Correlator) SignatureKind() (Kind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, kind := range []Kind{KindTransaction, KindSignData} {
		if c.openLocked(kind) != nil {
			return kind, true
		}
	}
	return "", false
}

// DiscardAll stops every timer and releases waiters with CLIENT_DESTROYED.
// No further operations can begin afterwards.
func (c *Correlator) DiscardAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for kind, op := range c.pending {
		op.timer.Stop()
		delete(c.pending, kind)
		metrics.PendingOperations.WithLabelValues(string(kind)).Dec()
		op.err = apperrors.DestroyedError(ErrDiscarded)
		op.settled = true
		close(op.done)
		c.logger.Debug("operation discarded",
			zap.String("kind", string(kind)),
			zap.String("operation_id", op.ID))
	}
}

// cancel rejects op if it is still the pending operation of its kind.
func (c *Correlator) cancel(op *Operation, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending[op.Kind] != op || op.claimed {
		return false
	}
	c.settleLocked(op, nil, err)
	return true
}

func (c *Correlator) expire(op *Operation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending[op.Kind] != op || op.claimed {
		return
	}
	c.settleLocked(op, nil, timeoutError(op.Kind))
}

// openLocked returns the pending operation of kind unless it is claimed.
func (c *Correlator) openLocked(kind Kind) *Operation {
	op := c.pending[kind]
	if op == nil || op.claimed {
		return nil
	}
	return op
}

func (c *Correlator) claimLocked(op *Operation) {
	op.claimed = true
	op.timer.Stop()
	c.logger.Debug("operation claimed",
		zap.String("kind", string(op.Kind)),
		zap.String("operation_id", op.ID))
}

func (c *Correlator) settleLocked(op *Operation, v any, err error) {
	op.timer.Stop()
	if c.pending[op.Kind] == op {
		delete(c.pending, op.Kind)
	}
	op.settled = true

	op.value, op.err = v, err
	close(op.done)

	outcome := "resolved"
	if err != nil {
		outcome = string(apperrors.CodeOf(err))
	}
	metrics.PendingOperations.WithLabelValues(string(op.Kind)).Dec()
	metrics.OperationsCompleted.WithLabelValues(string(op.Kind), outcome).Inc()
	metrics.OperationDuration.WithLabelValues(string(op.Kind)).Observe(c.now().Sub(op.StartedAt).Seconds())

	c.logger.Info("operation settled",
		zap.String("kind", string(op.Kind)),
		zap.String("operation_id", op.ID),
		zap.String("outcome", outcome))
}

func timeoutError(kind Kind) error {
	switch kind {
	case KindConnect:
		return apperrors.TimeoutError(ErrTimeout, apperrors.CodeConnectionTimeout, "wallet did not answer the connect request in time")
	case KindTransaction:
		return apperrors.TimeoutError(ErrTimeout, apperrors.CodeTransactionTimeout, "wallet did not answer the transaction request in time")
	default:
		return apperrors.TimeoutError(ErrTimeout, apperrors.CodeSignDataTimeout, "wallet did not answer the sign data request in time")
	}
}

// Operation is a pending request waiting for the wallet.
type Operation struct {
	ID        string
	Kind      Kind
	StartedAt time.Time

	done    chan struct{}
	value   any
	err     error
	timer   *time.Timer
	claimed bool
	settled bool
	c       *Correlator
}

// Done is closed once the operation has settled.
func (o *Operation) Done() <-chan struct{} {
	return o.done
}

// Result returns the outcome. It must only be called after Done is closed.
func (o *Operation) Result() (any, error) {
	return o.value, o.err
}

// Abort rejects the operation with err if it is still pending.
func (o *Operation) Abort(err error) bool {
	return o.c.cancel(o, err)
}

// Wait blocks until the operation settles. If ctx ends first, the operation
// is cancelled with CANCELLED, unless it was claimed or settled meanwhile; a
// claimed operation is waited for until its claimant completes it.
func (o *Operation) Wait(ctx context.Context) (any, error) {
	select {
	case <-o.done:
	case <-ctx.Done():
		o.c.cancel(o, apperrors.CancelledError(fmt.Errorf("%w: %v", ErrCancelled, ctx.Err()),
			fmt.Sprintf("%s cancelled by caller", o.Kind)))
		<-o.done
	}
	return o.value, o.err
}

// Await waits for op and asserts its result type.
func Await[T any](ctx context.Context, op *Operation) (T, error) {
	var zero T
	v, err := op.Wait(ctx)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, apperrors.ProtocolError(fmt.Errorf("unexpected result type %T", v), "unexpected operation result")
	}
	return t, nil
}
