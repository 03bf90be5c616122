package memory

import (
	"context"
	"sync"

	"github.com/mdaeva/registry-server/pkg/dexadapter"
)

type store struct {
	mu sync.Mutex

	// Held for the duration of a transaction so a rollback cannot revert
	// a write that committed outside of it.
	txMu sync.Mutex

	config   *dexadapter.ConfigRecord
	routes   []*dexadapter.RouteRecord
	rotation *dexadapter.RotationRecord

	last uint64
}

type txKey struct{}

// lockForWrite serializes mutations against any in-flight transaction.
// Writes made from within the transaction callback itself only take the
// data mutex.
func (s *store) lockForWrite(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*store); ok && owner == s {
		s.mu.Lock()
		return s.mu.Unlock
	}

	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func New() dexadapter.Store {
	return &store{}
}

func (s *store) reset() {
	s.mu.Lock()
	s.config = nil
	s.routes = nil
	s.rotation = nil
	s.last = 0
	s.mu.Unlock()
}

type snapshot struct {
	config   *dexadapter.ConfigRecord
	routes   []*dexadapter.RouteRecord
	rotation *dexadapter.RotationRecord
	last     uint64
}

func (s *store) snapshot() *snapshot {
	res := &snapshot{
		last: s.last,
	}

	if s.config != nil {
		cloned := s.config.Clone()
		res.config = &cloned
	}
	for _, item := range s.routes {
		cloned := item.Clone()
		res.routes = append(res.routes, &cloned)
	}
	if s.rotation != nil {
		cloned := s.rotation.Clone()
		res.rotation = &cloned
	}

	return res
}

func (s *store) restore(snap *snapshot) {
	s.config = snap.config
	s.routes = snap.routes
	s.rotation = snap.rotation
	s.last = snap.last
}

func (s *store) ExecuteInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()

		return err
	}
	return nil
}

func (s *store) SaveConfig(ctx context.Context, record *dexadapter.ConfigRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	defer s.lockForWrite(ctx)()

	if s.config == nil {
		s.last++
		record.Id = s.last
	} else {
		record.Id = s.config.Id
	}

	cloned := record.Clone()
	s.config = &cloned

	return nil
}

func (s *store) GetConfig(_ context.Context) (*dexadapter.ConfigRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		return nil, dexadapter.ErrNotFound
	}

	cloned := s.config.Clone()
	return &cloned, nil
}

func (s *store) findRoute(mintFirst, mintLast string) *dexadapter.RouteRecord {
	for _, item := range s.routes {
		if item.MintFirst == mintFirst && item.MintLast == mintLast {
			return item
		}
	}
	return nil
}

func (s *store) SaveRoute(ctx context.Context, record *dexadapter.RouteRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	defer s.lockForWrite(ctx)()

	if item := s.findRoute(record.MintFirst, record.MintLast); item != nil {
		record.Id = item.Id
		record.CopyTo(item)
		return nil
	}

	s.last++
	record.Id = s.last

	cloned := record.Clone()
	s.routes = append(s.routes, &cloned)

	return nil
}

func (s *store) GetRoute(_ context.Context, mintFirst, mintLast string) (*dexadapter.RouteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findRoute(mintFirst, mintLast); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, dexadapter.ErrNotFound
}

func (s *store) GetAllRoutes(_ context.Context) ([]*dexadapter.RouteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.routes) == 0 {
		return nil, dexadapter.ErrNotFound
	}

	res := make([]*dexadapter.RouteRecord, len(s.routes))
	for i, item := range s.routes {
		cloned := item.Clone()
		res[i] = &cloned
	}
	return res, nil
}

func (s *store) SaveRotation(ctx context.Context, record *dexadapter.RotationRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	defer s.lockForWrite(ctx)()

	if s.rotation == nil {
		s.last++
		record.Id = s.last
	} else {
		record.Id = s.rotation.Id
	}

	cloned := record.Clone()
	s.rotation = &cloned

	return nil
}

func (s *store) GetRotation(_ context.Context) (*dexadapter.RotationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rotation == nil {
		return nil, dexadapter.ErrNotFound
	}

	cloned := s.rotation.Clone()
	return &cloned, nil
}
