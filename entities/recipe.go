package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"time"
)

type Recipe struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	Title       string                      `gorm:"not null;index" json:"title"`
	Description string                      `json:"description"`
	Ingredients datatypes.JSONSlice[string] `gorm:"not null" json:"ingredients"`
	Steps       datatypes.JSONSlice[string] `gorm:"not null" json:"steps"`
	PrepTime    *int                        `json:"prep_time,omitempty"`
	Difficulty  string                      `json:"difficulty,omitempty"`
	Category    string                      `gorm:"not null;index" json:"category"`
	ImageURL    string                      `json:"image_url,omitempty"`
	AuthorID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"author_id"`

	Author *User `gorm:"foreignKey:AuthorID"`
	Timestamp
}

// Rating is unique per (user, recipe); a repeated submission updates the row.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe;index" json:"recipe_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review    string    `gorm:"type:text" json:"review"`
	CreatedAt time.Time `gorm:"type:timestamp;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID"`
}

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
