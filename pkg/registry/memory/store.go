package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mdaeva/registry-server/pkg/database/query"
	"github.com/mdaeva/registry-server/pkg/registry"
)

type store struct {
	mu sync.Mutex

	// Held for the duration of a transaction so a rollback cannot revert
	// a write that committed outside of it.
	txMu sync.Mutex

	config     *registry.ConfigRecord
	lastUserId uint32
	identities []*registry.IdentityRecord
	data       []*registry.DataRecord
	rotations  []*registry.RotationRecord

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

type ByUserId []*registry.IdentityRecord

func (a ByUserId) Len() int           { return len(a) }
func (a ByUserId) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByUserId) Less(i, j int) bool { return a[i].UserId < a[j].UserId }

func New() registry.Store {
	return &store{}
}

func (s *store) reset() {
	s.mu.Lock()
	s.config = nil
	s.lastUserId = 0
	s.identities = nil
	s.data = nil
	s.rotations = nil
	s.last = 0
	s.mu.Unlock()
}

type snapshot struct {
	config     *registry.ConfigRecord
	lastUserId uint32
	identities []*registry.IdentityRecord
	data       []*registry.DataRecord
	rotations  []*registry.RotationRecord
	last       uint64
}

func (s *store) snapshot() *snapshot {
	res := &snapshot{
		lastUserId: s.lastUserId,
		last:       s.last,
	}

	if s.config != nil {
		cloned := s.config.Clone()
		res.config = &cloned
	}
	for _, item := range s.identities {
		cloned := item.Clone()
		res.identities = append(res.identities, &cloned)
	}
	for _, item := range s.data {
		cloned := item.Clone()
		res.data = append(res.data, &cloned)
	}
	for _, item := range s.rotations {
		cloned := item.Clone()
		res.rotations = append(res.rotations, &cloned)
	}

	return res
}

func (s *store) restore(snap *snapshot) {
	s.config = snap.config
	s.lastUserId = snap.lastUserId
	s.identities = snap.identities
	s.data = snap.data
	s.rotations = snap.rotations
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

func (s *store) SaveConfig(ctx context.Context, record *registry.ConfigRecord) error {
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

func (s *store) GetConfig(_ context.Context) (*registry.ConfigRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		return nil, registry.ErrNotFound
	}

	cloned := s.config.Clone()
	return &cloned, nil
}

func (s *store) GetLastUserId(_ context.Context) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastUserId, nil
}

func (s *store) SaveLastUserId(ctx context.Context, value uint32) error {
	defer s.lockForWrite(ctx)()

	s.lastUserId = value

	return nil
}

func (s *store) findIdentityByUserId(userId uint32) *registry.IdentityRecord {
	for _, item := range s.identities {
		if item.UserId == userId {
			return item
		}
	}
	return nil
}

func (s *store) findIdentityByOwner(owner string) *registry.IdentityRecord {
	for _, item := range s.identities {
		if item.Owner == owner {
			return item
		}
	}
	return nil
}

func (s *store) SaveIdentity(ctx context.Context, record *registry.IdentityRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	defer s.lockForWrite(ctx)()

	if item := s.findIdentityByUserId(record.UserId); item != nil {
		record.Id = item.Id
		record.CopyTo(item)
		return nil
	}

	s.last++
	record.Id = s.last

	cloned := record.Clone()
	s.identities = append(s.identities, &cloned)

	return nil
}

func (s *store) GetIdentityByOwner(_ context.Context, owner string) (*registry.IdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findIdentityByOwner(owner); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, registry.ErrNotFound
}

func (s *store) GetIdentityByUserId(_ context.Context, userId uint32) (*registry.IdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findIdentityByUserId(userId); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, registry.ErrNotFound
}

func (s *store) GetAllIdentities(_ context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*registry.IdentityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var start uint64
	if direction == query.Descending {
		start = uint64(s.lastUserId) + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	items := make([]*registry.IdentityRecord, len(s.identities))
	copy(items, s.identities)
	sort.Sort(ByUserId(items))

	var res []*registry.IdentityRecord
	for _, item := range items {
		if direction == query.Ascending && uint64(item.UserId) > start {
			res = append(res, item)
		}
		if direction == query.Descending && uint64(item.UserId) < start {
			res = append(res, item)
		}
	}

	if direction == query.Descending {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}

	if len(res) == 0 {
		return nil, registry.ErrNotFound
	}

	if limit > 0 && uint64(len(res)) > limit {
		res = res[:limit]
	}

	cloned := make([]*registry.IdentityRecord, len(res))
	for i, item := range res {
		c := item.Clone()
		cloned[i] = &c
	}

	return cloned, nil
}

func (s *store) findDataByUserId(userId uint32) *registry.DataRecord {
	for _, item := range s.data {
		if item.UserId == userId {
			return item
		}
	}
	return nil
}

func (s *store) SaveData(ctx context.Context, record *registry.DataRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	defer s.lockForWrite(ctx)()

	if item := s.findDataByUserId(record.UserId); item != nil {
		record.Id = item.Id
		record.CopyTo(item)
		return nil
	}

	s.last++
	record.Id = s.last

	cloned := record.Clone()
	s.data = append(s.data, &cloned)

	return nil
}

func (s *store) GetDataByUserId(_ context.Context, userId uint32) (*registry.DataRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findDataByUserId(userId); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, registry.ErrNotFound
}

func (s *store) DeleteDataByUserId(ctx context.Context, userId uint32) error {
	defer s.lockForWrite(ctx)()

	for i, item := range s.data {
		if item.UserId == userId {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *store) findRotation(key uint32) *registry.RotationRecord {
	for _, item := range s.rotations {
		if item.Key == key {
			return item
		}
	}
	return nil
}

func (s *store) SaveRotation(ctx context.Context, record *registry.RotationRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	defer s.lockForWrite(ctx)()

	if item := s.findRotation(record.Key); item != nil {
		record.Id = item.Id
		record.CopyTo(item)
		return nil
	}

	s.last++
	record.Id = s.last

	cloned := record.Clone()
	s.rotations = append(s.rotations, &cloned)

	return nil
}

func (s *store) GetRotation(_ context.Context, key uint32) (*registry.RotationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findRotation(key); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, registry.ErrNotFound
}
