package history

import (
	"time"

	"github.com/kailas-cloud/stylebot/internal/domain/chat"
)

// messageRow maps the chats table.
type messageRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Content   string    `db:"content"`
	Context   string    `db:"context"`
	CreatedAt time.Time `db:"created_at"`
}

func toRow(m chat.Message) messageRow {
	return messageRow{
		ID:        m.ID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		Content:   m.Content,
		Context:   m.Context,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (r messageRow) toDomain() chat.Message {
	return chat.Message{
		ID:        r.ID,
		UserID:    r.UserID,
		Role:      chat.Role(r.Role),
		Content:   r.Content,
		Context:   r.Context,
		CreatedAt: r.CreatedAt,
	}
}
