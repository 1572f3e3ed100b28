// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/scoop-service/internal/domain/model"
)

// MockShopAPI implements client.API. Callbacks are invoked synchronously
// with the values configured through Return.
type MockShopAPI struct {
	mock.Mock
}

func (m *MockShopAPI) FetchMenu(ctx context.Context, cb func([]model.FlavorItem, error)) {
	args := m.Called(ctx)
	var items []model.FlavorItem
	if args.Get(0) != nil {
		items = args.Get(0).([]model.FlavorItem)
	}
	cb(items, args.Error(1))
}

func (m *MockShopAPI) CheckInventory(ctx context.Context, itemIDs []int, cb func(map[int]int, error)) {
	args := m.Called(ctx, itemIDs)
	var inventory map[int]int
	if args.Get(0) != nil {
		inventory = args.Get(0).(map[int]int)
	}
	cb(inventory, args.Error(1))
}

func (m *MockShopAPI) SubmitOrder(ctx context.Context, req model.OrderRequest, cb func(model.OrderResult, error)) {
	args := m.Called(ctx, req)
	cb(args.Get(0).(model.OrderResult), args.Error(1))
}

func (m *MockShopAPI) ValidatePromoCode(ctx context.Context, code string, cb func(model.PromoResult, error)) {
	args := m.Called(ctx, code)
	cb(args.Get(0).(model.PromoResult), args.Error(1))
}

func (m *MockShopAPI) GetOrderStatus(ctx context.Context, orderID string, cb func(model.OrderStatus, error)) {
	args := m.Called(ctx, orderID)
	cb(args.Get(0).(model.OrderStatus), args.Error(1))
}
