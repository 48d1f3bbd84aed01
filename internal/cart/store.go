package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/persist"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/storage"
	"github.com/sirupsen/logrus"
)

// Change is delivered to subscribers after every dispatched action.
type Change struct {
	Action  Action
	Outcome Outcome
	Cart    domain.Cart
}

// Store owns the cart. Every mutation goes through Reduce under the store lock,
// then a background save of the whole cart is scheduled. The caller never waits
// for the save.
type Store struct {
	mu    sync.RWMutex
	lines domain.Cart

	subMu       sync.Mutex
	subscribers map[int]func(Change)
	nextSub     int

	kv    storage.Store
	saver *persist.Saver
	log   logrus.FieldLogger
}

func NewStore(kv storage.Store, log logrus.FieldLogger, opts ...persist.Option) *Store {
	s := &Store{
		kv:          kv,
		subscribers: make(map[int]func(Change)),
		log:         log.WithField("store", "cart"),
	}
	s.saver = persist.NewSaver(kv, StorageKey, s.snapshot, s.log, opts...)
	return s
}

// Load reads the persisted cart and initializes the store with it. A missing,
// unreadable or malformed snapshot leaves the cart empty.
func (s *Store) Load(ctx context.Context) {
	data, err := s.kv.Load(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Error("failed to load cart from storage")
		}
		s.Initialize(nil)
		return
	}

	lines, err := DecodeSnapshot(data)
	if err != nil {
		s.log.WithError(err).Warn("discarding stored cart")
		if err := s.kv.Delete(ctx, StorageKey); err != nil {
			s.log.WithError(err).Error("failed to delete malformed cart snapshot")
		}
		s.Initialize(nil)
		return
	}

	s.Initialize(lines)
	s.log.WithField("lines", len(lines)).Info("cart restored from storage")
}

// Initialize replaces the cart wholesale. It does not trigger a save.
func (s *Store) Initialize(snapshot domain.Cart) {
	s.dispatch(Action{Type: ActionInitialize, Snapshot: snapshot})
}

// AddToCart reports whether a new line was appended or an existing one incremented.
func (s *Store) AddToCart(p domain.Product) Outcome {
	return s.dispatch(Action{Type: ActionAdd, Product: p})
}

func (s *Store) IncrementQuantity(productID int64) {
	s.dispatch(Action{Type: ActionIncrement, ProductID: productID})
}

func (s *Store) DecrementQuantity(productID int64) {
	s.dispatch(Action{Type: ActionDecrement, ProductID: productID})
}

func (s *Store) RemoveFromCart(productID int64) {
	s.dispatch(Action{Type: ActionRemove, ProductID: productID})
}

func (s *Store) EmptyCart() {
	s.dispatch(Action{Type: ActionEmpty})
}

func (s *Store) Lines() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lines.Clone()
}

func (s *Store) Contains(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lines.Index(productID) >= 0
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ItemCount(s.lines)
}

// Summary is the cart and its totals, read under one lock.
type Summary struct {
	Lines  domain.Cart
	Totals Totals
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summary{
		Lines:  s.lines.Clone(),
		Totals: ComputeTotals(s.lines),
	}
}

// Subscribe registers fn for every future change and returns a function that removes it.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// Close flushes the last pending save.
func (s *Store) Close(ctx context.Context) error {
	return s.saver.Close(ctx)
}

func (s *Store) dispatch(action Action) Outcome {
	s.mu.Lock()
	next, outcome := Reduce(s.lines, action)
	s.lines = next
	s.mu.Unlock()

	if action.Type != ActionInitialize {
		s.saver.Schedule()
	}

	s.publish(Change{Action: action, Outcome: outcome, Cart: next.Clone()})
	return outcome
}

func (s *Store) publish(change Change) {
	s.subMu.Lock()
	subs := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(change)
	}
}

func (s *Store) snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return EncodeSnapshot(s.lines)
}
