package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AverageNotAvailable is reported for domains without any counted rating.
const AverageNotAvailable = "NA"

// Average is a one-decimal domain mean. The zero value means "never rated".
type Average struct {
	Value decimal.Decimal
	Valid bool
}

func NewAverage(sum, count int64) Average {
	if count == 0 {
		return Average{}
	}
	mean := decimal.NewFromInt(sum).Div(decimal.NewFromInt(count))
	return Average{Value: mean.Round(1), Valid: true}
}

func (a Average) String() string {
	if !a.Valid {
		return AverageNotAvailable
	}
	return a.Value.StringFixed(1)
}

// MarshalJSON emits a number with one decimal, or the string "NA".
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return json.Marshal(AverageNotAvailable)
	}
	return []byte(a.Value.StringFixed(1)), nil
}

func (a *Average) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == AverageNotAvailable {
			*a = Average{}
			return nil
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		*a = Average{Value: v, Valid: true}
		return nil
	}
	v, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	*a = Average{Value: v, Valid: true}
	return nil
}

// DomainAggregate is the derived star summary of one domain.
type DomainAggregate struct {
	Average    Average `json:"average"`
	LastUpdate *string `json:"lastUpdate"`
	Count      int     `json:"count"`
}

// HistoryEntry is one rating of a domain history, dated by day.
type HistoryEntry struct {
	CriteriaID string `json:"criteriaId"`
	Criteria   string `json:"criteria"`
	Date       string `json:"date"`
	Rating     int    `json:"rating"`
}

type DomainHistory struct {
	Entries     []HistoryEntry    `json:"entries"`
	CriteriaMap map[string]string `json:"criteriaMap"`
}

// CurrentRating is the latest rating of one criterion.
type CurrentRating struct {
	Domain      string `json:"domain"`
	Criterion   string `json:"criterion"`
	CriterionID *int64 `json:"criterion_id,omitempty"`
	RatingID    int64  `json:"rating_id"`
	Rating      int    `json:"rating"`
	UpdatedAt   string `json:"updated_at"`
}
