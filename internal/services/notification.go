package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/templates"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/pkg/sendGrid"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("service/notification")

// NotificationService delivers a confirmed cart to the sales team.
type NotificationService interface {
	checkout.Submitter
}

type notificationService struct {
	repo         repository.PartsRequestRepository
	emailService sendGrid.EmailService
	renderer     *templates.Renderer
	storefront   config.Storefront
	location     *time.Location
	now          func() time.Time
}

func NewNotificationService(repo repository.PartsRequestRepository, emailService sendGrid.EmailService, renderer *templates.Renderer, storefront config.Storefront) NotificationService {
	return &notificationService{
		repo:         repo,
		emailService: emailService,
		renderer:     renderer,
		storefront:   storefront,
		location:     storefront.Location(),
		now:          time.Now,
	}
}

// SubmitPartsRequest records the request as pending, sends the e-mail and
// then marks the record sent or failed. The returned error is always an
// AppError.
func (n *notificationService) SubmitPartsRequest(ctx context.Context, submission checkout.Submission) (*models.SubmissionResult, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("sessionID", submission.SessionID))

	view := submission.Cart

	ctx, span := tracer.Start(ctx, "SubmitPartsRequest")
	defer span.End()
	span.SetAttributes(
		attribute.Int("parts_request.items", view.ItemCount),
		attribute.Int("parts_request.critical", view.CriticalCount),
	)
	receivedAt := n.now()

	summary := templates.NewSummary(view, submission.Contact, receivedAt, templates.Sender{
		Name:  n.storefront.CompanyName,
		Email: n.storefront.ContactEmail,
		Phone: n.storefront.ContactPhone,
	}, n.location)

	htmlContent, err := n.renderer.RenderHTML(summary)
	if err != nil {
		return nil, errors.InternalError("Failed to render parts request e-mail").WithError(err)
	}

	textContent, err := n.renderer.RenderText(summary)
	if err != nil {
		return nil, errors.InternalError("Failed to render parts request e-mail").WithError(err)
	}

	payload, err := json.Marshal(models.PartsRequestPayload{Items: view.Items, Contact: submission.Contact})
	if err != nil {
		return nil, errors.InternalError("Failed to encode parts request").WithError(err)
	}

	request := &models.PartsRequest{
		ID:            uuid.New(),
		SessionID:     submission.SessionID,
		Recipient:     n.storefront.SalesEmail,
		Subject:       templates.Subject(summary),
		ContactName:   submission.Contact.FullName,
		Company:       submission.Contact.Company,
		ContactEmail:  submission.Contact.Email,
		ItemCount:     view.ItemCount,
		MachineCount:  view.TotalMachines,
		CriticalCount: view.CriticalCount,
		Status:        models.PartsRequestPending,
		Payload:       payload,
	}

	if err := n.repo.CreatePartsRequest(ctx, request); err != nil {
		return nil, errors.DatabaseError("Failed to record parts request").WithError(err)
	}

	logger = logger.With(slog.String("requestID", request.ID.String()))
	span.SetAttributes(attribute.String("parts_request.id", request.ID.String()))

	err = n.emailService.Send(ctx, &models.EmailNotificationRequest{
		To:          n.storefront.SalesEmail,
		ToName:      n.storefront.SalesName,
		ReplyTo:     submission.Contact.Email,
		ReplyToName: submission.Contact.FullName,
		Subject:     request.Subject,
		Content:     textContent,
		HTMLContent: htmlContent,
	})

	if err != nil {
		metrics.RecordPartsRequest(string(models.PartsRequestFailed), request.ItemCount)

		if updateErr := n.repo.UpdatePartsRequestStatus(ctx, request.ID, models.PartsRequestFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to mark parts request as failed", slog.Any("error", updateErr))
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "e-mail delivery failed")
		logger.Error("Failed to send parts request e-mail", slog.Any("error", err))
		return nil, errors.ThirdPartyError("Failed to send parts request").WithError(err)
	}

	metrics.RecordPartsRequest(string(models.PartsRequestSent), request.ItemCount)

	// delivery already happened; a status write failure is only logged
	if err := n.repo.UpdatePartsRequestStatus(ctx, request.ID, models.PartsRequestSent, ""); err != nil {
		logger.Error("Parts request sent but status update failed", slog.Any("error", err))
	}

	logger.Info("Parts request sent",
		slog.Int("items", request.ItemCount),
		slog.Int("machines", request.MachineCount),
		slog.Int("critical", request.CriticalCount),
	)

	return &models.SubmissionResult{
		RequestID:            request.ID,
		Status:               models.PartsRequestSent,
		ItemCount:            view.ItemCount,
		TotalMachines:        view.TotalMachines,
		CriticalCount:        view.CriticalCount,
		ExpectedResponseTime: view.ExpectedResponseTime,
		SubmittedAt:          receivedAt,
	}, nil
}
