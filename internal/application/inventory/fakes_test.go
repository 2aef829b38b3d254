package inventory_test

import (
	"context"
	"sort"
	"sync"

	appinventory "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

// callLog registra el orden de operaciones de escritura compartido entre fakes.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(s string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, s)
}

type fakeItemRepo struct {
	mu       sync.Mutex
	items    map[string]*entity.Item
	getErr   error
	gets     int
	upserted []*entity.Item
	log      *callLog
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*entity.Item{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.items[item.ID] = &cp
	r.log.add("item.create")
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Upsert(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.upserted = append(r.upserted, &cp)
	for id, it := range r.items {
		if it.Code == item.Code {
			cp.ID = id
			r.items[id] = &cp
			return nil
		}
	}
	r.items[cp.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.getErr != nil {
		return nil, r.getErr
	}
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	r.log.add("item.delete")
	return nil
}

func (r *fakeItemRepo) getCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gets
}

type fakeMovRepo struct {
	mu      sync.Mutex
	moves   []*entity.StockMovement
	listErr error
	lists   int
	creates int
	log     *callLog
}

var _ repository.StockMovementRepository = (*fakeMovRepo)(nil)

func (r *fakeMovRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	cp := *m
	r.moves = append(r.moves, &cp)
	return nil
}

func (r *fakeMovRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.StockMovement
	for _, m := range r.moves {
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	if f.NewestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeMovRepo) DeleteByItem(_ context.Context, itemID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.moves[:0]
	var n int64
	for _, m := range r.moves {
		if m.ItemID == itemID {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.moves = kept
	r.log.add("moves.delete")
	return n, nil
}

func (r *fakeMovRepo) counts() (lists, creates int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists, r.creates
}

// fakeTxRunner ejecuta fn sobre los mismos repos en memoria.
type fakeTxRunner struct {
	items *fakeItemRepo
	moves *fakeMovRepo
	runs  int
}

var _ appinventory.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.StockMovementRepository) error) error {
	f.runs++
	return fn(f.items, f.moves)
}

type fakeCategoryRepo struct{ list []*entity.Category }

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.list = append(r.list, c)
	return nil
}

func (r *fakeCategoryRepo) List(context.Context) ([]*entity.Category, error) { return r.list, nil }

type fakeUnitRepo struct{ list []*entity.Unit }

func (r *fakeUnitRepo) Create(_ context.Context, u *entity.Unit) error {
	r.list = append(r.list, u)
	return nil
}

func (r *fakeUnitRepo) List(context.Context) ([]*entity.Unit, error) { return r.list, nil }

type fakeRevisionRepo struct{ rev int64 }

func (r *fakeRevisionRepo) Current(context.Context) (int64, error) { return r.rev, nil }

type fakeCache struct {
	rows map[int64][]inventory.ProjectedItem
	sets int
}

func (c *fakeCache) Get(_ context.Context, rev int64) ([]inventory.ProjectedItem, bool, error) {
	rows, ok := c.rows[rev]
	return rows, ok, nil
}

func (c *fakeCache) Set(_ context.Context, rev int64, rows []inventory.ProjectedItem) error {
	if c.rows == nil {
		c.rows = map[int64][]inventory.ProjectedItem{}
	}
	c.rows[rev] = rows
	c.sets++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripción y destinos de alertas
// ──────────────────────────────────────────────────────────────────────────────

type fakeSubscription struct {
	events    chan *entity.StockMovement
	err       error
	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{events: make(chan *entity.StockMovement, 8), closed: make(chan struct{})}
}

func (s *fakeSubscription) Events() <-chan *entity.StockMovement { return s.events }

func (s *fakeSubscription) Err() error { return s.err }

func (s *fakeSubscription) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

// fakeSubscriber entrega las suscripciones en orden; un error en la cola simula un fallo al suscribir.
type fakeSubscriber struct {
	mu       sync.Mutex
	queue    []any // *fakeSubscription | error
	attempts int
}

func (f *fakeSubscriber) SubscribeInserts(ctx context.Context) (repository.MovementSubscription, error) {
	f.mu.Lock()
	f.attempts++
	if len(f.queue) == 0 {
		f.mu.Unlock()
		<-ctx.Done()
		return nil, ctx.Err()
	}
	next := f.queue[0]
	f.queue = f.queue[1:]
	f.mu.Unlock()
	if err, ok := next.(error); ok {
		return nil, err
	}
	return next.(*fakeSubscription), nil
}

func (f *fakeSubscriber) attemptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

type chanSink struct{ alerts chan entity.StockAlert }

func newChanSink() *chanSink { return &chanSink{alerts: make(chan entity.StockAlert, 16)} }

func (s *chanSink) Publish(_ context.Context, a entity.StockAlert) error {
	s.alerts <- a
	return nil
}

type countingObserver struct {
	mu      sync.Mutex
	opened  int
	failed  int
	dropped map[string]int
	alerts  map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{dropped: map[string]int{}, alerts: map[string]int{}}
}

func (o *countingObserver) SubscriptionOpened() {
	o.mu.Lock()
	o.opened++
	o.mu.Unlock()
}

func (o *countingObserver) SubscriptionFailed() {
	o.mu.Lock()
	o.failed++
	o.mu.Unlock()
}

func (o *countingObserver) EventDropped(r string) {
	o.mu.Lock()
	o.dropped[r]++
	o.mu.Unlock()
}

func (o *countingObserver) AlertEmitted(s string) {
	o.mu.Lock()
	o.alerts[s]++
	o.mu.Unlock()
}

func (o *countingObserver) droppedCount(reason string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped[reason]
}

func intPtr(v int) *int { return &v }
