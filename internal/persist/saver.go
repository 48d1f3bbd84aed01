package persist

import (
	"context"
	"sync"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/storage"
	"github.com/sirupsen/logrus"
)

const DefaultWriteTimeout = 5 * time.Second

// SnapshotFunc serializes the current state of the owner at the moment of the write.
type SnapshotFunc func() ([]byte, error)

// Saver writes the latest snapshot of a store in the background.
// Schedule never blocks; requests that arrive while a write is pending are merged,
// so the last completed write always carries the most recent state.
type Saver struct {
	store    storage.Store
	key      string
	snapshot SnapshotFunc
	log      logrus.FieldLogger
	timeout  time.Duration

	dirty     chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	onWritten func(error)

	// cancelled when Close gives up, so no write outlives Close
	writeCtx    context.Context
	abortWrites context.CancelFunc
}

type Option func(*Saver)

func WithWriteTimeout(d time.Duration) Option {
	return func(s *Saver) { s.timeout = d }
}

// WithWriteHook is called after every write attempt with its result.
func WithWriteHook(fn func(error)) Option {
	return func(s *Saver) { s.onWritten = fn }
}

func NewSaver(store storage.Store, key string, snapshot SnapshotFunc, log logrus.FieldLogger, opts ...Option) *Saver {
	s := &Saver{
		store:    store,
		key:      key,
		snapshot: snapshot,
		log:      log.WithField("key", key),
		timeout:  DefaultWriteTimeout,
		dirty:    make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	s.writeCtx, s.abortWrites = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.loop()

	return s
}

// Schedule marks the state as changed. The write happens asynchronously.
func (s *Saver) Schedule() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Saver) loop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.dirty:
			s.write()
		case <-s.stop:
			select {
			case <-s.dirty:
				s.write()
			default:
			}
			return
		}
	}
}

func (s *Saver) write() {
	data, err := s.snapshot()
	if err != nil {
		s.log.WithError(err).Error("failed to serialize snapshot")
		s.notify(err)
		return
	}

	ctx, cancel := context.WithTimeout(s.writeCtx, s.timeout)
	defer cancel()

	err = s.store.Save(ctx, s.key, data)
	if err != nil {
		s.log.WithError(err).Error("failed to save snapshot to storage")
	}
	s.notify(err)
}

func (s *Saver) notify(err error) {
	if s.onWritten != nil {
		s.onWritten(err)
	}
}

// Close writes any pending change and stops the background writer.
// If ctx ends first, the write in progress is cancelled and Close still waits
// for the writer to exit, so the backend can be released right after it returns.
func (s *Saver) Close(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.abortWrites()
		return nil
	case <-ctx.Done():
		s.abortWrites()
		<-done
		return ctx.Err()
	}
}
