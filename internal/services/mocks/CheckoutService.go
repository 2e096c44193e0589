package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CheckoutService is a mock type for the CheckoutService type
type CheckoutService struct {
	mock.Mock
}

func checkoutView(ret mock.Arguments) (*models.CheckoutView, error) {
	var r0 *models.CheckoutView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CheckoutView)
	}

	return r0, ret.Error(1)
}

func (_m *CheckoutService) GetCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return checkoutView(_m.Called(ctx, sessionID))
}

func (_m *CheckoutService) Continue(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return checkoutView(_m.Called(ctx, sessionID))
}

func (_m *CheckoutService) SubmitContact(ctx context.Context, sessionID string, data *models.ContactData) (*models.CheckoutView, error) {
	return checkoutView(_m.Called(ctx, sessionID, data))
}

func (_m *CheckoutService) Back(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return checkoutView(_m.Called(ctx, sessionID))
}

func (_m *CheckoutService) Submit(ctx context.Context, sessionID string) (*models.SubmissionResult, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 *models.SubmissionResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.SubmissionResult)
	}

	return r0, ret.Error(1)
}

func (_m *CheckoutService) GetPartsRequest(ctx context.Context, sessionID string, id uuid.UUID) (*models.PartsRequest, error) {
	ret := _m.Called(ctx, sessionID, id)

	var r0 *models.PartsRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PartsRequest)
	}

	return r0, ret.Error(1)
}

// NewCheckoutService creates a new instance of CheckoutService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCheckoutService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutService {
	m := &CheckoutService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
