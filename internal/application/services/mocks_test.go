package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
)

// MockCatalogProvider is a mock implementation of providers.CatalogProvider
type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) FetchProcedures(ctx context.Context) ([]entities.Surgery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Surgery), args.Error(1)
}

func (m *MockCatalogProvider) FetchSurgeons(ctx context.Context) ([]entities.Surgeon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Surgeon), args.Error(1)
}

func (m *MockCatalogProvider) FetchImplants(ctx context.Context, category string) ([]entities.Implant, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Implant), args.Error(1)
}

func (m *MockCatalogProvider) FetchHospitals(ctx context.Context) ([]entities.Hospital, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Hospital), args.Error(1)
}

// MockCacheProvider is a mock implementation of providers.CacheProvider
type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of providers.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateIdentity(ctx context.Context, form entities.IdentityForm) (*entities.Identity, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

// MockPaymentProvider is a mock implementation of providers.PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) ChargeDeposit(ctx context.Context, booking *entities.BookingRecord) (*entities.Receipt, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Receipt), args.Error(1)
}

// MockEventBus is a mock implementation of providers.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.JourneyEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.JourneyEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.JourneyEvent), args.Error(1)
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}

var (
	_ providers.CatalogProvider  = (*MockCatalogProvider)(nil)
	_ providers.CacheProvider    = (*MockCacheProvider)(nil)
	_ providers.IdentityProvider = (*MockIdentityProvider)(nil)
	_ providers.PaymentProvider  = (*MockPaymentProvider)(nil)
	_ providers.EventBus         = (*MockEventBus)(nil)
)
