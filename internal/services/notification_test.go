package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/services"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/templates"
	sendGridMocks "github.com/aaravmahajanofficial/industrial-parts-storefront/pkg/sendGrid/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var storefront = config.Storefront{
	CompanyName:  "IndustrialParts",
	ContactEmail: "contato@industrialparts.com",
	ContactPhone: "(11) 1234-5678",
	SalesEmail:   "vendas@industrialparts.com",
	SalesName:    "Equipe Comercial",
	Timezone:     "UTC",
}

func setupNotificationServiceTest(t *testing.T) (service.NotificationService, *mocks.PartsRequestRepository, *sendGridMocks.EmailService) {
	t.Helper()

	repo := mocks.NewPartsRequestRepository(t)
	email := sendGridMocks.NewEmailService(t)
	svc := service.NewNotificationServiceWithClock(repo, email, templates.MustNewRenderer(), storefront, func() time.Time { return fixedNow })

	return svc, repo, email
}

func sampleSubmission(urgencies ...models.Urgency) checkout.Submission {
	items := make([]models.CartItem, 0, len(urgencies))
	critical := 0

	for i, u := range urgencies {
		if u == models.UrgencyCritical {
			critical++
		}
		items = append(items, models.CartItem{
			ID:                 uuid.NewString(),
			MachineID:          i%2 + 1,
			MachineName:        "Moinho de Bolas MB-2000",
			PartCategories:     []string{"Rolamentos e Mancais"},
			ProblemDescription: "ruído excessivo",
			Urgency:            u,
			AddedAt:            fixedNow,
		})
	}

	machines := min(len(items), 2)
	response := "12-24 horas"
	if critical > 0 {
		response = "2-4 horas"
	}

	contact := models.ContactData{
		FullName: "Ana Souza",
		Company:  "Mineração Serra Azul",
		Email:    "ana@serraazul.com.br",
		Phone:    "(31) 99999-0000",
		City:     "Belo Horizonte",
		State:    "MG",
		ZipCode:  "30110-000",
	}

	return checkout.Submission{
		SessionID: "sess-1",
		Cart: &models.CartView{
			Items:                items,
			ContactData:          &contact,
			ItemCount:            len(items),
			TotalMachines:        machines,
			CriticalCount:        critical,
			ExpectedResponseTime: response,
		},
		Contact: contact,
	}
}

func TestNotificationService_SubmitPartsRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, repo, email := setupNotificationServiceTest(t)
		submission := sampleSubmission(models.UrgencyHigh, models.UrgencyCritical)
		var recordID uuid.UUID

		repo.On("CreatePartsRequest", mock.Anything, mock.AnythingOfType("*models.PartsRequest")).Return(nil).Once().Run(func(args mock.Arguments) {
			record := args.Get(1).(*models.PartsRequest)
			recordID = record.ID

			assert.Equal(t, "sess-1", record.SessionID)
			assert.Equal(t, storefront.SalesEmail, record.Recipient)
			assert.Equal(t, "[CRÍTICO] Nova Solicitação de Peças Industriais - Mineração Serra Azul (2 itens)", record.Subject)
			assert.Equal(t, models.PartsRequestPending, record.Status)
			assert.Equal(t, 2, record.ItemCount)
			assert.Equal(t, 2, record.MachineCount)
			assert.Equal(t, 1, record.CriticalCount)

			var payload models.PartsRequestPayload
			require.NoError(t, json.Unmarshal(record.Payload, &payload))
			assert.Len(t, payload.Items, 2)
			assert.Equal(t, "ana@serraazul.com.br", payload.Contact.Email)
		})

		email.On("Send", mock.Anything, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.To == storefront.SalesEmail &&
				req.ToName == storefront.SalesName &&
				req.ReplyTo == "ana@serraazul.com.br" &&
				req.ReplyToName == "Ana Souza" &&
				req.HTMLContent != "" &&
				req.Content != ""
		})).Return(nil).Once()

		repo.On("UpdatePartsRequestStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), models.PartsRequestSent, "").Return(nil).Once()

		// Act
		result, err := svc.SubmitPartsRequest(ctx, submission)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, recordID, result.RequestID)
		assert.Equal(t, models.PartsRequestSent, result.Status)
		assert.Equal(t, 2, result.ItemCount)
		assert.Equal(t, 1, result.CriticalCount)
		assert.Equal(t, "2-4 horas", result.ExpectedResponseTime)
		assert.Equal(t, fixedNow, result.SubmittedAt)
	})

	t.Run("Success - Status update failure is not reported", func(t *testing.T) {
		svc, repo, email := setupNotificationServiceTest(t)

		repo.On("CreatePartsRequest", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("UpdatePartsRequestStatus", mock.Anything, mock.Anything, models.PartsRequestSent, "").Return(errors.New("db gone")).Once()

		result, err := svc.SubmitPartsRequest(ctx, sampleSubmission(models.UrgencyLow))

		require.NoError(t, err)
		assert.Equal(t, models.PartsRequestSent, result.Status)
	})

	t.Run("Failure - E-mail not delivered", func(t *testing.T) {
		svc, repo, email := setupNotificationServiceTest(t)
		sendErr := errors.New("failed to send email, status code: 401")

		repo.On("CreatePartsRequest", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, mock.Anything).Return(sendErr).Once()
		repo.On("UpdatePartsRequestStatus", mock.Anything, mock.Anything, models.PartsRequestFailed, sendErr.Error()).Return(nil).Once()

		result, err := svc.SubmitPartsRequest(ctx, sampleSubmission(models.UrgencyMedium))

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeThirdPartyError)
		assert.ErrorIs(t, err, sendErr)
	})

	t.Run("Failure - Record not created", func(t *testing.T) {
		svc, repo, email := setupNotificationServiceTest(t)

		repo.On("CreatePartsRequest", mock.Anything, mock.Anything).Return(errors.New("db gone")).Once()

		result, err := svc.SubmitPartsRequest(ctx, sampleSubmission(models.UrgencyMedium))

		assert.Nil(t, result)
		assertAppErrorCode(t, err, appErrors.ErrCodeDatabaseError)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}
