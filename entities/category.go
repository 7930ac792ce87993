package entities

import (
	"github.com/google/uuid"
	"time"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"type:timestamp" json:"createdAt"`
}
