// Package session persists the (session id, wallet) pair of a connection
// through a host supplied key-value storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// DefaultPrefix namespaces the persisted keys.
const DefaultPrefix = "tonconnect_"

// MaxSessionIDLength is the longest accepted session id, in characters.
const MaxSessionIDLength = 200

const (
	sessionKey = "session"
	walletKey  = "wallet"
)

var (
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrCorruptSession   = errors.New("persisted session is corrupt")
)

// Storage is the key-value capability the store persists through.
// Get reports found=false when the key is absent.
//
//go:generate mockery --name Storage --output mocks --outpkg mocks --filename mock_storage.go --with-expecter
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Session is the persisted connection.
type Session struct {
	ID     string
	Wallet *tonconnect.WalletInfo
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateSessionID checks that id has 1 to 200 characters and no control characters.
func ValidateSessionID(id string) error {
	n := utf8.RuneCountInString(id)
	if n == 0 || n > MaxSessionIDLength {
		return fmt.Errorf("%w: length %d", ErrInvalidSessionID, n)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: not valid utf-8", ErrInvalidSessionID)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: contains control characters", ErrInvalidSessionID)
		}
	}
	return nil
}

// ValidateWallet checks a wallet record read back from storage.
func ValidateWallet(w *tonconnect.WalletInfo) error {
	if w == nil {
		return errors.New("wallet is empty")
	}
	return validate.Struct(w)
}

type settings struct {
	logger *zap.Logger
}

// Option configures the Store.
type Option func(*settings)

// WithLogger sets a custom logger for the store.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// Store reads and writes a Session under a key prefix.
// It keeps no copy of the data and holds the storage only by interface.
type Store struct {
	storage Storage
	prefix  string
	logger  *zap.Logger
}

// NewStore creates a Store. An empty prefix selects DefaultPrefix.
func NewStore(storage Storage, prefix string, opts ...Option) *Store {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{storage: storage, prefix: prefix, logger: s.logger}
}

// SessionKey returns the storage key holding the raw session id.
func (s *Store) SessionKey() string { return s.prefix + sessionKey }

// WalletKey returns the storage key holding the JSON wallet record.
func (s *Store) WalletKey() string { return s.prefix + walletKey }

// Save writes both keys. The session is validated first.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if err := ValidateSessionID(sess.ID); err != nil {
		return err
	}
	if err := ValidateWallet(sess.Wallet); err != nil {
		return fmt.Errorf("invalid wallet: %w", err)
	}

	raw, err := json.Marshal(sess.Wallet)
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	if err := s.storage.Set(ctx, s.SessionKey(), sess.ID); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := s.storage.Set(ctx, s.WalletKey(), string(raw)); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}

// Load reads the persisted session. It returns nil, nil when nothing is stored.
// A partial or invalid record is cleared and reported as ErrCorruptSession.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	id, hasID, err := s.storage.Get(ctx, s.SessionKey())
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	rawWallet, hasWallet, err := s.storage.Get(ctx, s.WalletKey())
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	if !hasID && !hasWallet {
		return nil, nil
	}

	sess, cause := s.decode(id, hasID, rawWallet, hasWallet)
	if cause != nil {
		s.logger.Warn("discarding corrupt persisted session", zap.Error(cause))
		if err := s.Clear(ctx); err != nil {
			s.logger.Warn("failed to clear corrupt session", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, cause)
	}
	return sess, nil
}

func (s *Store) decode(id string, hasID bool, rawWallet string, hasWallet bool) (*Session, error) {
	if !hasID || !hasWallet {
		return nil, errors.New("incomplete record")
	}
	if err := ValidateSessionID(id); err != nil {
		return nil, err
	}
	var w tonconnect.WalletInfo
	if err := json.Unmarshal([]byte(rawWallet), &w); err != nil {
		return nil, fmt.Errorf("unmarshal wallet: %w", err)
	}
	if err := ValidateWallet(&w); err != nil {
		return nil, fmt.Errorf("invalid wallet: %w", err)
	}
	return &Session{ID: id, Wallet: &w}, nil
}

// Clear removes both keys. Both removals are attempted even if the first fails.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Join(
		s.storage.Remove(ctx, s.SessionKey()),
		s.storage.Remove(ctx, s.WalletKey()),
	)
}
