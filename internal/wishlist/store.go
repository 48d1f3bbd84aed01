package wishlist

import (
	"context"
	"errors"
	"sync"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/persist"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/storage"
	"github.com/sirupsen/logrus"
)

type Change struct {
	Action   Action
	Wishlist domain.Wishlist
}

// Store owns the wishlist and persists it the same way the cart store does.
type Store struct {
	mu    sync.RWMutex
	items domain.Wishlist

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
		log:         log.WithField("store", "wishlist"),
	}
	s.saver = persist.NewSaver(kv, StorageKey, s.snapshot, s.log, opts...)
	return s
}

func (s *Store) Load(ctx context.Context) {
	data, err := s.kv.Load(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Error("failed to load wishlist from storage")
		}
		s.Initialize(nil)
		return
	}

	items, err := DecodeSnapshot(data)
	if err != nil {
		s.log.WithError(err).Warn("discarding stored wishlist")
		if err := s.kv.Delete(ctx, StorageKey); err != nil {
			s.log.WithError(err).Error("failed to delete malformed wishlist snapshot")
		}
		s.Initialize(nil)
		return
	}

	s.Initialize(items)
}

func (s *Store) Initialize(snapshot domain.Wishlist) {
	s.dispatch(Action{Type: ActionInitialize, Snapshot: snapshot})
}

// Toggle adds p when absent and removes it when present.
// It returns true when p is wishlisted afterwards.
func (s *Store) Toggle(p domain.Product) bool {
	next := s.dispatch(Action{Type: ActionToggle, Product: p})
	return next.Index(p.ID) >= 0
}

func (s *Store) Remove(productID int64) {
	s.dispatch(Action{Type: ActionRemove, ProductID: productID})
}

func (s *Store) IsWishlisted(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Index(productID) >= 0
}

func (s *Store) Items() domain.Wishlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Clone()
}

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

func (s *Store) Close(ctx context.Context) error {
	return s.saver.Close(ctx)
}

func (s *Store) dispatch(action Action) domain.Wishlist {
	s.mu.Lock()
	next := Reduce(s.items, action)
	s.items = next
	s.mu.Unlock()

	if action.Type != ActionInitialize {
		s.saver.Schedule()
	}

	s.subMu.Lock()
	subs := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(Change{Action: action, Wishlist: next.Clone()})
	}
	return next
}

func (s *Store) snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return EncodeSnapshot(s.items)
}
