package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// MachineRepository is a mock type for the MachineRepository type
type MachineRepository struct {
	mock.Mock
}

func (_m *MachineRepository) GetMachineByID(ctx context.Context, id int) (*models.Machine, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Machine
	if rf, ok := ret.Get(0).(func(context.Context, int) *models.Machine); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Machine)
	}

	return r0, ret.Error(1)
}

func (_m *MachineRepository) ListMachines(ctx context.Context, filter models.MachineFilter) ([]*models.Machine, int, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*models.Machine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Machine)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MachineRepository) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	ret := _m.Called(ctx)

	var r0 []models.CategoryCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.CategoryCount)
	}

	return r0, ret.Error(1)
}

// NewMachineRepository creates a new instance of MachineRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMachineRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MachineRepository {
	m := &MachineRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
