package chat

import (
	"fmt"
	"time"
)

// Role is the author of a chat turn.
type Role string

// Role constants.
const (
	User      Role = "user"
	Assistant Role = "assistant"
	// System only appears in prompts, never in stored history.
	System Role = "system"
)

// IsValid checks if the role can be stored in history.
func (r Role) IsValid() bool { return r == User || r == Assistant }

// Message is one persisted chat turn.
// Context holds the product context the answer was grounded on (user turns only).
type Message struct {
	ID        string
	UserID    string
	Role      Role
	Content   string
	Context   string
	CreatedAt time.Time
}

// Validate checks required fields before persisting.
func (m Message) Validate() error {
	if m.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if !m.Role.IsValid() {
		return fmt.Errorf("invalid role %q", m.Role)
	}
	if m.Content == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
