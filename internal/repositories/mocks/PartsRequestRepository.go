package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PartsRequestRepository is a mock type for the PartsRequestRepository type
type PartsRequestRepository struct {
	mock.Mock
}

func (_m *PartsRequestRepository) CreatePartsRequest(ctx context.Context, request *models.PartsRequest) error {
	ret := _m.Called(ctx, request)

	if rf, ok := ret.Get(0).(func(context.Context, *models.PartsRequest) error); ok {
		return rf(ctx, request)
	}

	return ret.Error(0)
}

func (_m *PartsRequestRepository) UpdatePartsRequestStatus(ctx context.Context, id uuid.UUID, status models.PartsRequestStatus, errorMsg string) error {
	ret := _m.Called(ctx, id, status, errorMsg)

	return ret.Error(0)
}

func (_m *PartsRequestRepository) GetPartsRequestForSession(ctx context.Context, id uuid.UUID, sessionID string) (*models.PartsRequest, error) {
	ret := _m.Called(ctx, id, sessionID)

	var r0 *models.PartsRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PartsRequest)
	}

	return r0, ret.Error(1)
}

// NewPartsRequestRepository creates a new instance of PartsRequestRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPartsRequestRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PartsRequestRepository {
	m := &PartsRequestRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
