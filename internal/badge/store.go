package badge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"edusign/internal/metrics"
	"edusign/internal/storage"
)

// Store is the badge collection backed by a key-value port.
// The mutex only serializes read-modify-write within this process;
// other writers sharing the backend race with last-write-wins.
type Store struct {
	kv        storage.Store
	validate  *validator.Validate
	log       *zap.Logger
	now       func() time.Time
	newID     func(time.Time) string
	mintDelay time.Duration

	mu sync.Mutex
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(f func(time.Time) string) Option {
	return func(s *Store) { s.newID = f }
}

// WithMintDelay sets how long Mint pretends to wait for the chain.
func WithMintDelay(d time.Duration) Option {
	return func(s *Store) { s.mintDelay = d }
}

const DefaultMintDelay = 1500 * time.Millisecond

func NewStore(kv storage.Store, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		validate:  newValidator(),
		log:       zap.NewNop(),
		now:       time.Now,
		newID:     NewID,
		mintDelay: DefaultMintDelay,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewID returns edusign_<unix millis>_<6 random chars>.
func NewID(t time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s%d_%s", idPrefix, t.UnixMilli(), token)
}

// List returns the collection in insertion order, seeding it on first use.
// On failure it still returns an empty, non-nil slice alongside an ErrStorage error.
func (s *Store) List(ctx context.Context) ([]Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	badges, err := s.ensureInitialized(ctx)
	if err != nil {
		s.log.Error("Error reading badges", zap.Error(err))
		return []Badge{}, err
	}
	return badges, nil
}

// ensureInitialized loads the collection, writing the seed records when the key is absent.
// Caller must hold s.mu.
func (s *Store) ensureInitialized(ctx context.Context) ([]Badge, error) {
	raw, err := s.kv.Get(ctx, CollectionKey)
	if errors.Is(err, storage.ErrNotFound) {
		initial := Seeds()
		if err := s.write(ctx, initial); err != nil {
			return nil, err
		}
		s.log.Info("Seeded badge collection", zap.Int("count", len(initial)))
		return initial, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read collection: %w", ErrStorage, err)
	}
	return decode(raw)
}

func decode(raw []byte) ([]Badge, error) {
	var badges []Badge
	if err := json.Unmarshal(raw, &badges); err != nil {
		return nil, fmt.Errorf("%w: decode collection: %w", ErrStorage, err)
	}
	if badges == nil {
		badges = []Badge{}
	}
	return badges, nil
}

// Snapshot reads the persisted collection without seeding it. found is false
// when nothing is persisted.
func (s *Store) Snapshot(ctx context.Context) (badges []Badge, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.kv.Get(ctx, CollectionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read collection: %w", ErrStorage, err)
	}
	badges, err = decode(raw)
	if err != nil {
		return nil, false, err
	}
	return badges, true, nil
}

func (s *Store) write(ctx context.Context, badges []Badge) error {
	data, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %w", ErrStorage, err)
	}
	if err := s.kv.Set(ctx, CollectionKey, data); err != nil {
		return fmt.Errorf("%w: write collection: %w", ErrStorage, err)
	}
	return nil
}

// Create validates f, appends a new badge and persists the collection.
func (s *Store) Create(ctx context.Context, f Fields) (Badge, error) {
	f = f.normalized()
	if err := check(s.validate, f); err != nil {
		metrics.BadgeOperations.WithLabelValues("create", "invalid").Inc()
		return Badge{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	badges, err := s.ensureInitialized(ctx)
	if err != nil {
		return s.failCreate(err)
	}

	now := s.now()
	id, err := s.uniqueID(now, badges)
	if err != nil {
		return s.failCreate(err)
	}
	b := Badge{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Image:       f.Image,
		CreatedAt:   formatTime(now),
	}
	if err := s.write(ctx, append(badges, b)); err != nil {
		return s.failCreate(err)
	}

	metrics.BadgeOperations.WithLabelValues("create", "ok").Inc()
	s.log.Info("Badge created", zap.String("id", b.ID), zap.String("name", b.Name))
	return b, nil
}

func (s *Store) failCreate(err error) (Badge, error) {
	metrics.BadgeOperations.WithLabelValues("create", "error").Inc()
	s.log.Error("Error adding badge", zap.Error(err))
	return Badge{}, err
}

const maxIDAttempts = 16

var errIDExhausted = errors.New("no unique badge id")

func (s *Store) uniqueID(now time.Time, existing []Badge) (string, error) {
	taken := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		taken[b.ID] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID(now)
		if _, dup := taken[id]; !dup {
			return id, nil
		}
		now = now.Add(time.Millisecond)
	}
	return "", fmt.Errorf("%w after %d attempts", errIDExhausted, maxIDAttempts)
}

// Mint waits for the simulated minting delay and then creates the badge.
// It applies the mint form rules (name of 3+ characters, description of 10+)
// before waiting.
func (s *Store) Mint(ctx context.Context, f Fields) (Badge, error) {
	if err := check(s.validate, mintForm(f.normalized())); err != nil {
		metrics.BadgeOperations.WithLabelValues("create", "invalid").Inc()
		return Badge{}, err
	}
	if s.mintDelay > 0 {
		t := time.NewTimer(s.mintDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Badge{}, fmt.Errorf("minting cancelled: %w", ctx.Err())
		case <-t.C:
		}
	}
	return s.Create(ctx, f)
}

// Update merges p into the badge with the given id. found is false, with a nil error,
// when no such badge exists; the collection is then left untouched.
func (s *Store) Update(ctx context.Context, id string, p Patch) (updated Badge, found bool, err error) {
	p = p.normalized()
	if err := checkPatch(s.validate, p); err != nil {
		metrics.BadgeOperations.WithLabelValues("update", "invalid").Inc()
		return Badge{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	badges, err := s.ensureInitialized(ctx)
	if err != nil {
		metrics.BadgeOperations.WithLabelValues("update", "error").Inc()
		s.log.Error("Error updating badge", zap.String("id", id), zap.Error(err))
		return Badge{}, false, err
	}

	idx := -1
	for i, b := range badges {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		metrics.BadgeOperations.WithLabelValues("update", "not_found").Inc()
		return Badge{}, false, nil
	}

	updated = p.apply(badges[idx])
	badges[idx] = updated
	if err := s.write(ctx, badges); err != nil {
		metrics.BadgeOperations.WithLabelValues("update", "error").Inc()
		s.log.Error("Error updating badge", zap.String("id", id), zap.Error(err))
		return Badge{}, false, err
	}

	metrics.BadgeOperations.WithLabelValues("update", "ok").Inc()
	s.log.Info("Badge updated", zap.String("id", id))
	return updated, true, nil
}

// Delete removes the badge with the given id and reports whether one was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	badges, err := s.ensureInitialized(ctx)
	if err != nil {
		metrics.BadgeOperations.WithLabelValues("delete", "error").Inc()
		s.log.Error("Error deleting badge", zap.String("id", id), zap.Error(err))
		return false, err
	}

	kept := make([]Badge, 0, len(badges))
	for _, b := range badges {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(badges) {
		metrics.BadgeOperations.WithLabelValues("delete", "not_found").Inc()
		return false, nil
	}

	if err := s.write(ctx, kept); err != nil {
		metrics.BadgeOperations.WithLabelValues("delete", "error").Inc()
		s.log.Error("Error deleting badge", zap.String("id", id), zap.Error(err))
		return false, err
	}

	metrics.BadgeOperations.WithLabelValues("delete", "ok").Inc()
	s.log.Info("Badge deleted", zap.String("id", id))
	return true, nil
}

// Clear drops the persisted collection; the next List re-seeds it.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(ctx, CollectionKey); err != nil {
		metrics.BadgeOperations.WithLabelValues("clear", "error").Inc()
		s.log.Error("Error clearing wallet", zap.Error(err))
		return fmt.Errorf("%w: clear collection: %w", ErrStorage, err)
	}
	metrics.BadgeOperations.WithLabelValues("clear", "ok").Inc()
	return nil
}

// Preference reports the dark-mode flag. Unreadable values degrade to false
// alongside an ErrStorage error.
func (s *Store) Preference(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, DarkModeKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.log.Error("Error reading dark mode preference", zap.Error(err))
		return false, fmt.Errorf("%w: read preference: %w", ErrStorage, err)
	}
	var dark bool
	if err := json.Unmarshal(raw, &dark); err != nil {
		s.log.Error("Error reading dark mode preference", zap.Error(err))
		return false, fmt.Errorf("%w: decode preference: %w", ErrStorage, err)
	}
	return dark, nil
}

func (s *Store) SetPreference(ctx context.Context, dark bool) error {
	data, _ := json.Marshal(dark)
	if err := s.kv.Set(ctx, DarkModeKey, data); err != nil {
		s.log.Error("Error saving dark mode preference", zap.Error(err))
		return fmt.Errorf("%w: write preference: %w", ErrStorage, err)
	}
	return nil
}
