package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresClient struct {
	Pool *pgxpool.Pool
}

func NewPostgresClient(connString string) (*PostgresClient, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &PostgresClient{Pool: pool}

	// Auto-migrate schema
	if err := client.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) Migrate() error {
	ctx := context.Background()

	// Owner accounts
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) DEFAULT 'user',
			telegram_chat_id BIGINT DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	// Widget settings: one row per owner
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS widget_settings (
			id UUID PRIMARY KEY,
			user_id UUID UNIQUE NOT NULL REFERENCES users(id),
			business_name VARCHAR(255) NOT NULL,
			primary_color VARCHAR(20) NOT NULL,
			secondary_color VARCHAR(20) NOT NULL DEFAULT '#FFFFFF',
			position VARCHAR(20) NOT NULL DEFAULT 'bottom-right',
			icon_url TEXT NOT NULL DEFAULT '',
			welcome_message TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			auto_open BOOLEAN NOT NULL DEFAULT FALSE,
			open_delay INT NOT NULL DEFAULT 5 CHECK (open_delay >= 0),
			hide_on_mobile BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("create widget_settings table: %w", err)
	}

	// Keyword auto-responses
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS keyword_responses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			keywords TEXT[] NOT NULL,
			response TEXT NOT NULL,
			priority INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_keyword_responses_user
			ON keyword_responses (user_id, priority DESC);
	`)
	if err != nil {
		return fmt.Errorf("create keyword_responses table: %w", err)
	}

	// Chat sessions
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS chat_sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			visitor_id VARCHAR(255) NOT NULL DEFAULT '',
			visitor_name VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_chat_sessions_user
			ON chat_sessions (user_id, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("create chat_sessions table: %w", err)
	}

	// Messages are append-only; no updated_at on purpose
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS chat_messages (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL REFERENCES chat_sessions(id),
			sender VARCHAR(20) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_chat_messages_session
			ON chat_messages (session_id, created_at ASC);
	`)
	if err != nil {
		return fmt.Errorf("create chat_messages table: %w", err)
	}

	return nil
}

func (p *PostgresClient) Close() {
	p.Pool.Close()
}
