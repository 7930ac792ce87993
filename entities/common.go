package entities

import "time"

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}
