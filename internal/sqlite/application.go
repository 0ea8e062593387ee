package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ptdn/hoso-portal/internal/domain/application"
)

// ApplicationRepository implements repository.ApplicationRepository over a
// SQLite table. It keeps the same whole-collection contract as the JSON
// file store: Load reads everything in insertion order and SaveAll rewrites
// the table inside one transaction.
type ApplicationRepository struct {
	db *DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Load returns all applications ordered by creation.
func (r *ApplicationRepository) Load(ctx context.Context) ([]application.Application, error) {
	query := `
		SELECT
			order_number, code, full_name, phone_number, id_number,
			service_type, files, status, admin_note, is_received,
			submitted_at, updated_at, completed_at, received_at
		FROM applications
		ORDER BY order_number
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	defer rows.Close()

	apps := []application.Application{}
	for rows.Next() {
		var (
			app       application.Application
			files     string
			received  sql.NullTime
			completed sql.NullTime
		)
		if err := rows.Scan(
			&app.OrderNumber,
			&app.Code,
			&app.FullName,
			&app.PhoneNumber,
			&app.IDNumber,
			&app.ServiceType,
			&files,
			&app.Status,
			&app.AdminNote,
			&app.IsReceived,
			&app.SubmittedAt,
			&app.UpdatedAt,
			&completed,
			&received,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}

		if err := json.Unmarshal([]byte(files), &app.Files); err != nil {
			return nil, fmt.Errorf("failed to decode attachments for %s: %w", app.Code, err)
		}
		if completed.Valid {
			t := completed.Time
			app.CompletedAt = &t
		}
		if received.Valid {
			t := received.Time
			app.ReceivedAt = &t
		}

		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

// SaveAll replaces the stored collection with apps.
func (r *ApplicationRepository) SaveAll(ctx context.Context, apps []application.Application) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM applications"); err != nil {
		return fmt.Errorf("failed to clear applications: %w", err)
	}

	insert := `
		INSERT INTO applications (
			order_number, code, full_name, phone_number, id_number,
			service_type, files, status, admin_note, is_received,
			submitted_at, updated_at, completed_at, received_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, app := range apps {
		files, err := json.Marshal(app.Files)
		if err != nil {
			return fmt.Errorf("failed to encode attachments for %s: %w", app.Code, err)
		}

		var completed, received any
		if app.CompletedAt != nil {
			completed = *app.CompletedAt
		}
		if app.ReceivedAt != nil {
			received = *app.ReceivedAt
		}

		if _, err := tx.ExecContext(ctx, insert,
			app.OrderNumber,
			app.Code,
			app.FullName,
			app.PhoneNumber,
			app.IDNumber,
			app.ServiceType,
			string(files),
			app.Status,
			app.AdminNote,
			app.IsReceived,
			app.SubmittedAt,
			app.UpdatedAt,
			completed,
			received,
		); err != nil {
			return fmt.Errorf("failed to insert application %s: %w", app.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit applications: %w", err)
	}

	return nil
}
