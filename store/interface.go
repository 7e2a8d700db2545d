package store

import (
	"context"
	"time"
)

// Interaction is one resolved query, logged for later analysis. Rows
// are append-only; Timestamp is assigned by the database at insert
// time, never by the caller.
type Interaction struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64     `json:"user_id"`
	InputText  string    `json:"input_text" gorm:"type:text"`
	AIResponse string    `json:"ai_response" gorm:"type:text"`
	Source     string    `json:"source" gorm:"size:20"`
	Timestamp  time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// Store is the append-only interaction log.
type Store interface {
	Append(ctx context.Context, rec *Interaction) error
	Recent(ctx context.Context, limit int) ([]Interaction, error)
}
