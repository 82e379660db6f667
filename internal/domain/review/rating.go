package review

import (
	"math"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const (
	MinRating     = 1
	MaxRating     = 5
	MaxCommentLen = 500
)

// Aggregate returns the mean rating rounded to one decimal and the number of
// ratings. A doctor with no reviews falls back to the baseline rating.
func Aggregate(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return models.DefaultDoctorRating, 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))

	return math.Round(mean*10) / 10, len(ratings)
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return httperr.ErrValidation("invalid_rating")
	}
	return nil
}

func ValidateComment(comment string) error {
	if !validators.MaxLen(comment, MaxCommentLen) {
		return httperr.ErrValidation("field_too_long")
	}
	return nil
}
