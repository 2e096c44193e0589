package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

// EmailService is a mock type for the EmailService type
type EmailService struct {
	mock.Mock
}

func (_m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	ret := _m.Called(ctx, req)

	return ret.Error(0)
}

func (_m *EmailService) GetSendGridClient() *sendgrid.Client {
	ret := _m.Called()

	var r0 *sendgrid.Client
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sendgrid.Client)
	}

	return r0
}

// NewEmailService creates a new instance of EmailService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewEmailService(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmailService {
	m := &EmailService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
