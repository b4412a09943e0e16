package repository

import (
	"context"
	"errors"
	"widgetdesk/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `id, user_id, business_name, primary_color, secondary_color, position,
	icon_url, welcome_message, is_active, auto_open, open_delay, hide_on_mobile, created_at, updated_at`

func scanSettings(row pgx.Row) (*entities.WidgetSettings, error) {
	var s entities.WidgetSettings
	err := row.Scan(&s.ID, &s.UserID, &s.BusinessName, &s.PrimaryColor, &s.SecondaryColor,
		&s.Position, &s.IconURL, &s.WelcomeMessage, &s.IsActive, &s.AutoOpen,
		&s.OpenDelay, &s.HideOnMobile, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &s, nil
}

// GetByOwner expects exactly one settings row per owner.
func (r *SettingsRepository) GetByOwner(ctx context.Context, userID string) (*entities.WidgetSettings, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+settingsColumns+" FROM widget_settings WHERE user_id = $1", userID)
	return scanSettings(row)
}

func (r *SettingsRepository) Insert(ctx context.Context, s *entities.WidgetSettings) (*entities.WidgetSettings, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO widget_settings
			(id, user_id, business_name, primary_color, secondary_color, position,
			 icon_url, welcome_message, is_active, auto_open, open_delay, hide_on_mobile)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+settingsColumns,
		s.ID, s.UserID, s.BusinessName, s.PrimaryColor, s.SecondaryColor, s.Position,
		s.IconURL, s.WelcomeMessage, s.IsActive, s.AutoOpen, s.OpenDelay, s.HideOnMobile)
	return scanSettings(row)
}

// Update changes only the columns supplied in upd; nil fields keep their
// stored value. The row must belong to userID.
func (r *SettingsRepository) Update(ctx context.Context, userID string, upd *entities.WidgetSettingsUpdate) (*entities.WidgetSettings, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE widget_settings SET
			business_name   = COALESCE($3, business_name),
			primary_color   = COALESCE($4, primary_color),
			secondary_color = COALESCE($5, secondary_color),
			position        = COALESCE($6, position),
			icon_url        = COALESCE($7, icon_url),
			welcome_message = COALESCE($8, welcome_message),
			is_active       = COALESCE($9, is_active),
			auto_open       = COALESCE($10, auto_open),
			open_delay      = COALESCE($11, open_delay),
			hide_on_mobile  = COALESCE($12, hide_on_mobile),
			updated_at      = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+settingsColumns,
		upd.ID, userID, upd.BusinessName, upd.PrimaryColor, upd.SecondaryColor, upd.Position,
		upd.IconURL, upd.WelcomeMessage, upd.IsActive, upd.AutoOpen, upd.OpenDelay, upd.HideOnMobile)
	return scanSettings(row)
}
