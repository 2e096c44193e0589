package service

import (
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/templates"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/pkg/sendGrid"
)

func NewNotificationServiceWithClock(repo repository.PartsRequestRepository, emailService sendGrid.EmailService, renderer *templates.Renderer, storefront config.Storefront, now func() time.Time) NotificationService {
	s := NewNotificationService(repo, emailService, renderer, storefront).(*notificationService)
	s.now = now

	return s
}
