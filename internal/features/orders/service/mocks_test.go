package service

import (
	"context"

	"shipment-sync/internal/features/orders/domain"

	"github.com/stretchr/testify/mock"
)

// MockOrderProvider is a mock implementation of ports.OrderProvider
type MockOrderProvider struct {
	mock.Mock
}

func (m *MockOrderProvider) FindByName(ctx context.Context, query string) (*domain.ResolvedOrder, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedOrder), args.Error(1)
}

func (m *MockOrderProvider) FindByReference(ctx context.Context, gid string) (*domain.ResolvedOrder, error) {
	args := m.Called(ctx, gid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedOrder), args.Error(1)
}

func (m *MockOrderProvider) CreateFulfillment(ctx context.Context, unitID string, tracking domain.TrackingWrite, notifyCustomer bool) (*domain.FulfillmentResult, error) {
	args := m.Called(ctx, unitID, tracking, notifyCustomer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FulfillmentResult), args.Error(1)
}
