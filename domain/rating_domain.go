package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessRatingAdded   = "Rating added"
	MessageSuccessRatingUpdated = "Rating updated"

	MessageFailedAddRating  = "An error occurred while adding rating"
	MessageFailedGetRatings = "An error occurred while fetching ratings"

	MessageRatingInvalid = "Rating must be an integer between 1 and 5"
	MessageReviewTooLong = "Review must not exceed 1000 characters"

	ErrRatingInvalid = NewValidationError(MessageRatingInvalid)
	ErrReviewTooLong = NewValidationError(MessageReviewTooLong)
)

const (
	MinRating       = 1
	MaxRating       = 5
	MaxReviewLength = 1000
)

type (
	RatingRequest struct {
		Rating *int    `json:"rating"`
		Review *string `json:"review"`
	}

	Rating struct {
		ID     string `json:"id"`
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}

	RatingResponse struct {
		Message string `json:"message"`
		Rating  Rating `json:"rating"`
	}

	Reviewer struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	RatingDetail struct {
		ID        string    `json:"id"`
		Rating    int       `json:"rating"`
		Review    string    `json:"review"`
		User      Reviewer  `json:"user"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	RecipeRatingsResponse struct {
		Ratings       []RatingDetail `json:"ratings"`
		AverageRating float64        `json:"averageRating"`
		TotalRatings  int64          `json:"totalRatings"`
	}
)

// AverageRating is sum/count rounded half away from zero to one decimal; 0 when count is 0.
func AverageRating(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	avg, _ := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(count)).
		Round(1).
		Float64()
	return avg
}
