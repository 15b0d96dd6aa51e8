package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// StateRepository persists the change token per calendar so restarts can
// resume incrementally instead of always starting from a full sync.
type StateRepository interface {
	LoadToken(ctx context.Context, calendarId string) (string, error)
	SaveToken(ctx context.Context, calendarId string, token string) error
}

type StateRepositoryImpl struct {
	db *sql.DB
}

func NewStateRepository(db *sql.DB) *StateRepositoryImpl {
	return &StateRepositoryImpl{db: db}
}

func (r *StateRepositoryImpl) LoadToken(ctx context.Context, calendarId string) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx,
		"SELECT sync_token FROM sync_state WHERE calendar_id = $1", calendarId).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		err := fmt.Errorf("could not query sync state: %w", err)
		log.Error(err)
		return "", err
	}
	return token, nil
}

func (r *StateRepositoryImpl) SaveToken(ctx context.Context, calendarId string, token string) error {
	query := `INSERT INTO sync_state (calendar_id, sync_token, updated_at) VALUES ($1, $2, $3)
	          ON CONFLICT (calendar_id) DO UPDATE SET sync_token = $2, updated_at = $3`

	_, err := r.db.ExecContext(ctx, query, calendarId, token, time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store sync state: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
