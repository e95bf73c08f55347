package service

import (
	"fmt"
	"sort"
	"strconv"

	"health-wheel/internal/domain/entity"
)

// AggregateByDomain computes the star summary of every domain present in
// ratings. Rows with a zero value are placeholders and never counted, but
// their domain still appears with an "NA" average.
func AggregateByDomain(ratings []entity.Rating) map[string]entity.DomainAggregate {
	type acc struct {
		sum, count int64
		last       string
	}

	accs := make(map[string]*acc)
	for _, r := range ratings {
		a, ok := accs[r.Domain]
		if !ok {
			a = &acc{}
			accs[r.Domain] = a
		}
		if r.Value == 0 {
			continue
		}
		a.sum += int64(r.Value)
		a.count++
		if ts := r.Timestamp(); a.last == "" || entity.TimestampAfter(ts, a.last) {
			a.last = ts
		}
	}

	out := make(map[string]entity.DomainAggregate, len(accs))
	for domain, a := range accs {
		agg := entity.DomainAggregate{
			Average: entity.NewAverage(a.sum, a.count),
			Count:   int(a.count),
		}
		if a.count > 0 && a.last != "" {
			last := a.last
			agg.LastUpdate = &last
		}
		out[domain] = agg
	}
	return out
}

// BuildHistory groups rated rows per domain, dated by day, in input order.
func BuildHistory(ratings []entity.Rating) map[string]entity.DomainHistory {
	out := make(map[string]entity.DomainHistory)
	for _, r := range ratings {
		if r.Value == 0 {
			continue
		}
		h, ok := out[r.Domain]
		if !ok {
			h = entity.DomainHistory{Entries: []entity.HistoryEntry{}, CriteriaMap: map[string]string{}}
		}

		criteriaID := r.CriterionText
		name := r.CriterionText
		if criteriaID == "" {
			criteriaID = "question-" + strconv.FormatInt(r.ID, 10)
			name = fmt.Sprintf("Question %d", r.ID)
		}
		h.CriteriaMap[criteriaID] = name
		h.Entries = append(h.Entries, entity.HistoryEntry{
			CriteriaID: criteriaID,
			Criteria:   name,
			Date:       dayOf(r.Timestamp()),
			Rating:     r.Value,
		})
		out[r.Domain] = h
	}
	return out
}

// LatestByCriterion keeps the most recent rating per (domain, criterion).
// Equal timestamps resolve to the higher record id.
func LatestByCriterion(ratings []entity.Rating) []entity.CurrentRating {
	type key struct{ domain, criterion string }

	latest := make(map[key]entity.Rating)
	for _, r := range ratings {
		if r.Value == 0 {
			continue
		}
		k := key{r.Domain, r.CriterionText}
		prev, ok := latest[k]
		if !ok || newer(r, prev) {
			latest[k] = r
		}
	}

	out := make([]entity.CurrentRating, 0, len(latest))
	for k, r := range latest {
		out = append(out, entity.CurrentRating{
			Domain:      k.domain,
			Criterion:   k.criterion,
			CriterionID: r.CriterionID,
			RatingID:    r.ID,
			Rating:      r.Value,
			UpdatedAt:   r.Timestamp(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Domain != out[j].Domain {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Criterion < out[j].Criterion
	})
	return out
}

func newer(a, b entity.Rating) bool {
	ta, tb := a.Timestamp(), b.Timestamp()
	if entity.TimestampAfter(ta, tb) {
		return true
	}
	if entity.TimestampAfter(tb, ta) {
		return false
	}
	return a.ID > b.ID
}

func dayOf(ts string) string {
	if t, ok := entity.ParseTimestamp(ts); ok {
		return t.UTC().Format("2006-01-02")
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
