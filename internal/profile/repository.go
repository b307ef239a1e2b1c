package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"food-menu-api/internal/menu"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	AddCondition(ctx context.Context, id uuid.UUID, c ConditionAssignment) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := `SELECT profile_id, username, first_name, last_name, created_at, updated_at
	          FROM profiles WHERE profile_id = $1`

	var p Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Username, &p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile %s: %w", id, menu.ErrNotFound)
		}
		return nil, err
	}

	condQuery := `SELECT condition_code, severity, diagnosed_on
	              FROM profile_conditions WHERE profile_id = $1 ORDER BY condition_code`
	rows, err := r.db.QueryContext(ctx, condQuery, id)
	if err != nil {
		return nil, fmt.Errorf("query profile conditions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c         ConditionAssignment
			diagnosed sql.NullTime
		)
		if err := rows.Scan(&c.Condition, &c.Severity, &diagnosed); err != nil {
			return nil, fmt.Errorf("scan profile condition: %w", err)
		}
		if diagnosed.Valid {
			t := diagnosed.Time
			c.DiagnosedOn = &t
		}
		p.Conditions = append(p.Conditions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepo) Save(ctx context.Context, p *Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()

	query := `
		INSERT INTO profiles (profile_id, username, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id) DO UPDATE SET
			username = $2,
			first_name = $3,
			last_name = $4,
			updated_at = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Username, p.FirstName, p.LastName, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *postgresRepo) AddCondition(ctx context.Context, id uuid.UUID, c ConditionAssignment) error {
	query := `
		INSERT INTO profile_conditions (profile_id, condition_code, severity, diagnosed_on)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, condition_code) DO UPDATE SET
			severity = $3,
			diagnosed_on = $4
	`
	_, err := r.db.ExecContext(ctx, query, id, c.Condition, c.Severity, c.DiagnosedOn)
	return err
}
