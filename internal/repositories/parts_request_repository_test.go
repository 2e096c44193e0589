package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPartsRequestRepoTest(t *testing.T) (repository.PartsRequestRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewPartsRequestRepo(db)
	require.NotNil(t, repo, "NewPartsRequestRepo should return a non-nil repository")

	return repo, mock
}

var (
	insertPartsRequestSQL = regexp.QuoteMeta(`
		INSERT INTO parts_requests (id, session_id, recipient, subject, contact_name, company, contact_email, item_count, machine_count, critical_count, status, error_message, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`)

	updatePartsRequestSQL = regexp.QuoteMeta(`
		UPDATE parts_requests
		SET status = $1, error_message = $2, updated_at = NOW(),
			sent_at = CASE WHEN $1 = 'sent' THEN NOW() ELSE sent_at END
		WHERE id = $3
	`)

	selectPartsRequestSQL = regexp.QuoteMeta(`
		SELECT id, session_id, recipient, subject, contact_name, company, contact_email, item_count, machine_count, critical_count, status, error_message, payload, created_at, updated_at, sent_at
		FROM parts_requests
		WHERE id = $1 AND session_id = $2
	`)

	partsRequestColumns = []string{"id", "session_id", "recipient", "subject", "contact_name", "company", "contact_email",
		"item_count", "machine_count", "critical_count", "status", "error_message", "payload", "created_at", "updated_at", "sent_at"}
)

func samplePartsRequest() *models.PartsRequest {
	return &models.PartsRequest{
		ID:            uuid.New(),
		SessionID:     "sess-1",
		Recipient:     "vendas@industrialparts.com",
		Subject:       "Nova Solicitação de Peças Industriais - Agro Vale (2 itens)",
		ContactName:   "Carlos Lima",
		Company:       "Agro Vale",
		ContactEmail:  "carlos@agrovale.com.br",
		ItemCount:     2,
		MachineCount:  1,
		CriticalCount: 0,
		Status:        models.PartsRequestPending,
		Payload:       json.RawMessage(`{"items":[],"contact":{}}`),
	}
}

func TestPartsRequestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatePartsRequest", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			repo, mock := setupPartsRequestRepoTest(t)
			request := samplePartsRequest()
			now := time.Now().UTC().Truncate(time.Second)

			mock.ExpectQuery(insertPartsRequestSQL).
				WithArgs(request.ID, request.SessionID, request.Recipient, request.Subject, request.ContactName, request.Company,
					request.ContactEmail, request.ItemCount, request.MachineCount, request.CriticalCount, request.Status,
					request.ErrorMessage, []byte(request.Payload)).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreatePartsRequest(ctx, request)

			// Assert
			require.NoError(t, err, "CreatePartsRequest should succeed")
			assert.Equal(t, now, request.CreatedAt)
			assert.Equal(t, now, request.UpdatedAt)
			assert.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			repo, mock := setupPartsRequestRepoTest(t)
			request := samplePartsRequest()
			dbError := errors.New("database insertion error")

			mock.ExpectQuery(insertPartsRequestSQL).WillReturnError(dbError)

			// Act
			err := repo.CreatePartsRequest(ctx, request)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			assert.Contains(t, err.Error(), "failed to create parts request")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("UpdatePartsRequestStatus", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			repo, mock := setupPartsRequestRepoTest(t)
			id := uuid.New()

			mock.ExpectExec(updatePartsRequestSQL).
				WithArgs(models.PartsRequestSent, "", id).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UpdatePartsRequestStatus(ctx, id, models.PartsRequestSent, "")

			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			repo, mock := setupPartsRequestRepoTest(t)
			id := uuid.New()

			mock.ExpectExec(updatePartsRequestSQL).
				WithArgs(models.PartsRequestFailed, "sendgrid: 401", id).
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.UpdatePartsRequestStatus(ctx, id, models.PartsRequestFailed, "sendgrid: 401")

			require.Error(t, err)
			assert.ErrorIs(t, err, repository.ErrPartsRequestNotFound)
			assert.Contains(t, err.Error(), id.String())
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Exec Error", func(t *testing.T) {
			repo, mock := setupPartsRequestRepoTest(t)
			id := uuid.New()
			dbError := errors.New("connection reset")

			mock.ExpectExec(updatePartsRequestSQL).
				WithArgs(models.PartsRequestSent, "", id).
				WillReturnError(dbError)

			err := repo.UpdatePartsRequestStatus(ctx, id, models.PartsRequestSent, "")

			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			assert.Contains(t, err.Error(), "failed to update the parts request status")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetPartsRequestForSession", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			repo, mock := setupPartsRequestRepoTest(t)
			expected := samplePartsRequest()
			expected.Status = models.PartsRequestSent
			expected.CreatedAt = time.Now().Add(-time.Minute).UTC().Truncate(time.Second)
			expected.UpdatedAt = expected.CreatedAt.Add(2 * time.Second)
			sentAt := expected.UpdatedAt
			expected.SentAt = &sentAt

			rows := sqlmock.NewRows(partsRequestColumns).
				AddRow(expected.ID, expected.SessionID, expected.Recipient, expected.Subject, expected.ContactName, expected.Company,
					expected.ContactEmail, expected.ItemCount, expected.MachineCount, expected.CriticalCount, expected.Status,
					expected.ErrorMessage, []byte(expected.Payload), expected.CreatedAt, expected.UpdatedAt, sentAt)

			mock.ExpectQuery(selectPartsRequestSQL).
				WithArgs(expected.ID, "sess-1").
				WillReturnRows(rows)

			result, err := repo.GetPartsRequestForSession(ctx, expected.ID, "sess-1")

			require.NoError(t, err)
			assert.Equal(t, expected, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Pending request has no sent time", func(t *testing.T) {
			repo, mock := setupPartsRequestRepoTest(t)
			expected := samplePartsRequest()
			now := time.Now().UTC().Truncate(time.Second)

			rows := sqlmock.NewRows(partsRequestColumns).
				AddRow(expected.ID, expected.SessionID, expected.Recipient, expected.Subject, expected.ContactName, expected.Company,
					expected.ContactEmail, expected.ItemCount, expected.MachineCount, expected.CriticalCount, expected.Status,
					expected.ErrorMessage, []byte(expected.Payload), now, now, nil)

			mock.ExpectQuery(selectPartsRequestSQL).
				WithArgs(expected.ID, "sess-1").
				WillReturnRows(rows)

			result, err := repo.GetPartsRequestForSession(ctx, expected.ID, "sess-1")

			require.NoError(t, err)
			assert.Nil(t, result.SentAt)
			assert.Equal(t, models.PartsRequestPending, result.Status)
		})

		t.Run("Failure - Other session", func(t *testing.T) {
			repo, mock := setupPartsRequestRepoTest(t)
			id := uuid.New()

			mock.ExpectQuery(selectPartsRequestSQL).
				WithArgs(id, "sess-2").
				WillReturnError(sql.ErrNoRows)

			result, err := repo.GetPartsRequestForSession(ctx, id, "sess-2")

			assert.ErrorIs(t, err, repository.ErrPartsRequestNotFound)
			assert.Nil(t, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Failure - Query Error", func(t *testing.T) {
			repo, mock := setupPartsRequestRepoTest(t)
			id := uuid.New()
			dbError := errors.New("timeout")

			mock.ExpectQuery(selectPartsRequestSQL).
				WithArgs(id, "sess-1").
				WillReturnError(dbError)

			result, err := repo.GetPartsRequestForSession(ctx, id, "sess-1")

			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			assert.NotErrorIs(t, err, repository.ErrPartsRequestNotFound)
			assert.Nil(t, result)
		})
	})
}
