package lock

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"ratelock/internal/domain"
)

const (
	StatusAll = "all"

	SortDate   = "date"
	SortAmount = "amount"
	SortRate   = "rate"
	SortStatus = "status"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

var (
	ErrInvalidStatusFilter = errors.New("status must be one of all, active, expired, used")
	ErrInvalidSort         = errors.New("sort must be one of date, amount, rate, status")
	ErrInvalidOrder        = errors.New("order must be asc or desc")
)

// ListQuery narrows and orders a user's locks. The zero value after Normalize
// lists everything newest first.
type ListQuery struct {
	Status string
	Search string
	Sort   string
	Order  string
}

func (q ListQuery) Normalize() (ListQuery, error) {
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	q.Order = strings.ToLower(strings.TrimSpace(q.Order))
	q.Search = strings.TrimSpace(q.Search)

	switch q.Status {
	case "":
		q.Status = StatusAll
	case StatusAll, string(domain.DisplayActive), string(domain.DisplayExpired), string(domain.DisplayUsed):
	default:
		return ListQuery{}, ErrInvalidStatusFilter
	}

	switch q.Sort {
	case "":
		q.Sort = SortDate
	case SortDate, SortAmount, SortRate, SortStatus:
	default:
		return ListQuery{}, ErrInvalidSort
	}

	switch q.Order {
	case "":
		q.Order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return ListQuery{}, ErrInvalidOrder
	}
	return q, nil
}

// Apply filters on display status and search text, then sorts. Ties keep
// the input order.
func Apply(views []View, q ListQuery) []View {
	out := make([]View, 0, len(views))
	needle := strings.ToUpper(q.Search)
	for _, v := range views {
		if q.Status != "" && q.Status != StatusAll && string(v.Display) != q.Status {
			continue
		}
		if needle != "" && !matches(v, needle) {
			continue
		}
		out = append(out, v)
	}

	compare := comparator(q.Sort)
	slices.SortStableFunc(out, func(a, b View) int {
		if q.Order == OrderAsc {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return out
}

func matches(v View, needle string) bool {
	return strings.Contains(v.From, needle) ||
		strings.Contains(v.To, needle) ||
		strings.Contains(strings.ToUpper(v.Reference), needle)
}

var statusRank = map[domain.DisplayStatus]int{
	domain.DisplayActive:  0,
	domain.DisplayUsed:    1,
	domain.DisplayExpired: 2,
}

func comparator(sortBy string) func(a, b View) int {
	switch sortBy {
	case SortAmount:
		return func(a, b View) int { return cmp.Compare(a.FromAmount, b.FromAmount) }
	case SortRate:
		return func(a, b View) int { return cmp.Compare(a.Rate, b.Rate) }
	case SortStatus:
		return func(a, b View) int { return cmp.Compare(statusRank[a.Display], statusRank[b.Display]) }
	default:
		return func(a, b View) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

type Counts struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
	Used    int `json:"used"`
}

func Count(views []View) Counts {
	c := Counts{Total: len(views)}
	for _, v := range views {
		switch v.Display {
		case domain.DisplayActive:
			c.Active++
		case domain.DisplayExpired:
			c.Expired++
		case domain.DisplayUsed:
			c.Used++
		}
	}
	return c
}
