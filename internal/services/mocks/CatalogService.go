package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// CatalogService is a mock type for the CatalogService type
type CatalogService struct {
	mock.Mock
}

func (_m *CatalogService) GetMachine(ctx context.Context, id int) (*models.Machine, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Machine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Machine)
	}

	return r0, ret.Error(1)
}

func (_m *CatalogService) ListMachines(ctx context.Context, filter models.MachineFilter) (*models.PaginatedResponse, error) {
	ret := _m.Called(ctx, filter)

	var r0 *models.PaginatedResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PaginatedResponse)
	}

	return r0, ret.Error(1)
}

func (_m *CatalogService) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	ret := _m.Called(ctx)

	var r0 []models.CategoryCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.CategoryCount)
	}

	return r0, ret.Error(1)
}

func (_m *CatalogService) ListPartCategories() []string {
	ret := _m.Called()

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}

	return r0
}

// NewCatalogService creates a new instance of CatalogService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCatalogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogService {
	m := &CatalogService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
