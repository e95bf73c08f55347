package entity

import (
	"strconv"
	"time"
)

const RatingTypeStars = "rating"

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one persisted star rating. Timestamps are kept as the literal
// strings the store returned so they can be reported verbatim.
type Rating struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	Value         int    `json:"rating"`
	Data          string `json:"data"`
	Domain        string `json:"domain"`
	CriterionText string `json:"criterion"`
	CriterionID   *int64 `json:"criterion_id,omitempty"`
	PatientID     int64  `json:"patient_id"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// Timestamp returns UpdatedAt when set, else CreatedAt.
func (r Rating) Timestamp() string {
	if r.UpdatedAt != "" {
		return r.UpdatedAt
	}
	return r.CreatedAt
}

// RatingSubmission is the input of a single rating write.
type RatingSubmission struct {
	PatientID   int64
	CriterionID int64
	Criterion   string
	Domain      string
	Value       int
}

// NewRating builds the record persisted for a submission.
func NewRating(sub RatingSubmission) *Rating {
	criterionID := sub.CriterionID
	return &Rating{
		Title:         sub.Criterion,
		Type:          RatingTypeStars,
		Value:         sub.Value,
		Data:          strconv.Itoa(sub.Value),
		Domain:        sub.Domain,
		CriterionText: sub.Criterion,
		CriterionID:   &criterionID,
		PatientID:     sub.PatientID,
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats produced by the record stores.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimestampAfter reports whether a is later than b. Unparseable values fall
// back to lexical comparison.
func TimestampAfter(a, b string) bool {
	ta, okA := ParseTimestamp(a)
	tb, okB := ParseTimestamp(b)
	if okA && okB {
		return ta.After(tb)
	}
	return a > b
}
