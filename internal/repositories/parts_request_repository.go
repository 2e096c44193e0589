package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils"
	"github.com/google/uuid"
)

var ErrPartsRequestNotFound = errors.New("parts request not found")

type PartsRequestRepository interface {
	CreatePartsRequest(ctx context.Context, request *models.PartsRequest) error
	UpdatePartsRequestStatus(ctx context.Context, id uuid.UUID, status models.PartsRequestStatus, errorMsg string) error
	GetPartsRequestForSession(ctx context.Context, id uuid.UUID, sessionID string) (*models.PartsRequest, error)
}

type partsRequestRepository struct {
	DB *sql.DB
}

func NewPartsRequestRepo(db *sql.DB) PartsRequestRepository {
	return &partsRequestRepository{DB: db}
}

func (r *partsRequestRepository) CreatePartsRequest(ctx context.Context, request *models.PartsRequest) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO parts_requests (id, session_id, recipient, subject, contact_name, company, contact_email, item_count, machine_count, critical_count, status, error_message, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, request.ID, request.SessionID, request.Recipient, request.Subject, request.ContactName,
		request.Company, request.ContactEmail, request.ItemCount, request.MachineCount, request.CriticalCount, request.Status,
		request.ErrorMessage, []byte(request.Payload)).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create parts request: %w", err)
	}

	return nil
}

func (r *partsRequestRepository) UpdatePartsRequestStatus(ctx context.Context, id uuid.UUID, status models.PartsRequestStatus, errorMsg string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE parts_requests
		SET status = $1, error_message = $2, updated_at = NOW(),
			sent_at = CASE WHEN $1 = 'sent' THEN NOW() ELSE sent_at END
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, errorMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update the parts request status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return fmt.Errorf("%w: %s", ErrPartsRequestNotFound, id)
	}

	return nil
}

func (r *partsRequestRepository) GetPartsRequestForSession(ctx context.Context, id uuid.UUID, sessionID string) (*models.PartsRequest, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, session_id, recipient, subject, contact_name, company, contact_email, item_count, machine_count, critical_count, status, error_message, payload, created_at, updated_at, sent_at
		FROM parts_requests
		WHERE id = $1 AND session_id = $2
	`

	result := &models.PartsRequest{}

	var (
		payload []byte
		sentAt  sql.NullTime
	)

	err := r.DB.QueryRowContext(dbCtx, query, id, sessionID).Scan(&result.ID, &result.SessionID, &result.Recipient, &result.Subject,
		&result.ContactName, &result.Company, &result.ContactEmail, &result.ItemCount, &result.MachineCount, &result.CriticalCount,
		&result.Status, &result.ErrorMessage, &payload, &result.CreatedAt, &result.UpdatedAt, &sentAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartsRequestNotFound
		}

		return nil, fmt.Errorf("failed to get parts request: %w", err)
	}

	result.Payload = json.RawMessage(payload)

	if sentAt.Valid {
		result.SentAt = &sentAt.Time
	}

	return result, nil
}
