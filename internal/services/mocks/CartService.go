package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// CartService is a mock type for the CartService type
type CartService struct {
	mock.Mock
}

func cartView(ret mock.Arguments) (*models.CartView, error) {
	var r0 *models.CartView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CartView)
	}

	return r0, ret.Error(1)
}

func (_m *CartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	return cartView(_m.Called(ctx, sessionID))
}

func (_m *CartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartItem, error) {
	ret := _m.Called(ctx, sessionID, req)

	var r0 *models.CartItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CartItem)
	}

	return r0, ret.Error(1)
}

func (_m *CartService) UpdateItem(ctx context.Context, sessionID, itemID string, req *models.UpdateItemRequest) (*models.CartView, error) {
	return cartView(_m.Called(ctx, sessionID, itemID, req))
}

func (_m *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*models.CartView, error) {
	return cartView(_m.Called(ctx, sessionID, itemID))
}

func (_m *CartService) ClearCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	return cartView(_m.Called(ctx, sessionID))
}

func (_m *CartService) SetVisibility(ctx context.Context, sessionID string, action models.CartVisibilityAction) (*models.CartView, error) {
	return cartView(_m.Called(ctx, sessionID, action))
}

// NewCartService creates a new instance of CartService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCartService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartService {
	m := &CartService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
