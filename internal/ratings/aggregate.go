package ratings

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// MinScore and MaxScore bound every sub-score and stored rating value.
	MinScore = 1
	MaxScore = 5
)

// Triple holds the three sub-scores a user submits for a vendor. A zero value
// means the sub-score has not been set.
type Triple struct {
	Price   int
	Time    int
	Quality int
}

// Complete reports whether all three sub-scores are set and within bounds.
func (t Triple) Complete() bool {
	return inRange(t.Price) && inRange(t.Time) && inRange(t.Quality)
}

// Average computes the rounded mean of a complete triple. Incomplete triples
// are rejected so a partial submission can never produce a value.
func (t Triple) Average() (float64, error) {
	if !t.Complete() {
		return 0, fmt.Errorf("rating triple requires price, time, and quality scores in [%d,%d]", MinScore, MaxScore)
	}
	return Round2(float64(t.Price+t.Time+t.Quality) / 3), nil
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatRating renders a stored rating for display. A vendor with no ratings,
// or a zero rating, renders as "Not rated yet"; otherwise the value is shown
// to three significant figures with a pluralized count suffix.
func FormatRating(rating float64, count int64) string {
	if rating == 0 || count == 0 {
		return "Not rated yet"
	}
	noun := "ratings"
	if count == 1 {
		noun = "rating"
	}
	return fmt.Sprintf("%s (%d %s)", strconv.FormatFloat(rating, 'g', 3, 64), count, noun)
}

func inRange(score int) bool {
	return score >= MinScore && score <= MaxScore
}
