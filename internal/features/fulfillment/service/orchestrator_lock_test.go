package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"shipment-sync/internal/core/cache"
	"shipment-sync/internal/features/fulfillment/domain"
	orders "shipment-sync/internal/features/orders/domain"
	orderservice "shipment-sync/internal/features/orders/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeShop keeps fulfillment unit state so a write closes the unit for later reads.
type fakeShop struct {
	mu     sync.Mutex
	status map[string]orders.FulfillmentStatus
	writes int
}

func (s *fakeShop) order() *orders.ResolvedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return orderWith(orders.FulfillmentUnit{ID: "fo_1", Status: s.status["fo_1"]})
}

func (s *fakeShop) FindByName(_ context.Context, _ string) (*orders.ResolvedOrder, error) {
	order := s.order()
	// widen the gap between read and write
	time.Sleep(20 * time.Millisecond)
	return order, nil
}

func (s *fakeShop) FindByReference(_ context.Context, _ string) (*orders.ResolvedOrder, error) {
	return s.order(), nil
}

func (s *fakeShop) CreateFulfillment(_ context.Context, unitID string, _ orders.TrackingWrite, _ bool) (*orders.FulfillmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if !s.status[unitID].Actionable() {
		return nil, &orders.ValidationError{UnitID: unitID, Errors: []orders.UserError{{Message: "Fulfillment order is closed"}}}
	}
	s.status[unitID] = orders.FulfillmentStatusClosed
	return &orders.FulfillmentResult{UnitID: unitID, FulfillmentID: "f_1", Status: "SUCCESS"}, nil
}

func TestOrchestrator_Process_DuplicateDeliveries(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sp := new(MockShipmentProvider)
	sp.On("GetOrder", mock.Anything, "BK-1").
		Return(doc(t, `{"content":{"code":"LP-1009","trackingCode":"TRK1"}}`), nil)

	shop := &fakeShop{status: map[string]orders.FulfillmentStatus{"fo_1": orders.FulfillmentStatusOpen}}
	o := NewOrchestrator(sp, orderservice.NewLocator(shop), orderservice.NewWriter(shop, true),
		cache.NewStoreLocker(store, "ordlock:", 5*time.Second), Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := event(t, `{"status":"SHIPPED","id":"BK-1"}`)

	var wg sync.WaitGroup
	states := make([]domain.State, 2)
	errs := make([]error, 2)
	for i := range states {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := o.Process(ctx, ev)
			states[i], errs[i] = outcome.State, err
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.ElementsMatch(t, []domain.State{domain.StateDone, domain.StateNoOpenUnits}, states)
	assert.Equal(t, 1, shop.writes)
	assert.False(t, mr.Exists("ordlock:#LP-1009"))
}
