package entities

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`             // "admin" or "user"
	TelegramChatID int64     `json:"telegram_chat_id"` // 0 = notifications disabled
	CreatedAt      time.Time `json:"created_at"`
}
