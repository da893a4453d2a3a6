package history

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/chat"
)

// Driver names accepted in configuration.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS chats (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		context TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chats_user_created ON chats(user_id, created_at)`,
}

// Repo persists chat turns in a SQL database.
type Repo struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open connects to the configured database and bootstraps the schema.
func Open(ctx context.Context, driver, dsn string) (*Repo, error) {
	name, err := sqlDriver(driver)
	if err != nil {
		return nil, err
	}
	conn, err := sqlx.ConnectContext(ctx, name, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if name == "sqlite3" {
		// sqlite serializes writers; a single connection also keeps :memory: databases shared.
		conn.SetMaxOpenConns(1)
	}
	r := New(conn)
	if err := r.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return r, nil
}

// New wraps an existing connection.
func New(conn *sqlx.DB) *Repo {
	return &Repo{db: conn, now: time.Now}
}

func sqlDriver(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported history driver %q", driver)
	}
}

// Migrate creates the chats table when missing.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: migrate: %w", domain.ErrHistory, err)
		}
	}
	return nil
}

// Ping checks connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the connection pool.
func (r *Repo) Close() error {
	return r.db.Close()
}

// SaveTurn appends one message. Missing ID and timestamp are filled in.
func (r *Repo) SaveTurn(ctx context.Context, m chat.Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrHistory, err)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now()
	}

	const q = `INSERT INTO chats (id, user_id, role, content, context, created_at)
		VALUES (:id, :user_id, :role, :content, :context, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, q, toRow(m)); err != nil {
		return fmt.Errorf("%w: save turn: %w", domain.ErrHistory, err)
	}
	return nil
}

// Recent returns the last limit messages of a user, oldest first.
func (r *Repo) Recent(ctx context.Context, userID string, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	var rows []messageRow
	q := r.db.Rebind(`SELECT id, user_id, role, content, context, created_at
		FROM chats WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &rows, q, userID, limit); err != nil {
		return nil, fmt.Errorf("%w: recent turns: %w", domain.ErrHistory, err)
	}

	out := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	slices.Reverse(out)
	return out, nil
}
