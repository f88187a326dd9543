package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentshare/internal/domain"
	"rentshare/internal/models"
)

const requestColumns = `id, description, requester_id, created`

func scanRequest(row interface{ Scan(...any) error }) (*models.ItemRequest, error) {
	r := &models.ItemRequest{}
	err := row.Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, requester_id, created) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		request.Description,
		request.RequesterID,
		utc(request.Created),
	)
	if err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = ?`
	request, err := scanRequest(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item request: %w", err)
	}
	return request, nil
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query item requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ItemRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item requests: %w", err)
	}
	return requests, nil
}

// Свежие запросы первыми, в обеих выборках.

func (db *DB) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = ? ORDER BY created DESC`
	return db.queryRequests(ctx, query, requesterID)
}

func (db *DB) ListAllRequests(ctx context.Context) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY created DESC`
	return db.queryRequests(ctx, query)
}
