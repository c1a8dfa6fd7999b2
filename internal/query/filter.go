// Package query фильтрует каталог яхт: чистые предикаты без состояния,
// собираемые по И из параметров запроса.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"dockside/internal/models"
)

// Filter describes the active catalogue filters. Zero values mean
// "not filtering on this dimension".
type Filter struct {
	Location  string
	YachtType string

	// Capacity keeps the raw selector: a plain number means "at most N
	// guests", the trailing-plus form "30+" means "at least 30".
	Capacity string

	MinHourly *models.Amount
	MaxHourly *models.Amount

	// Text matches case-insensitively against name, description and location.
	Text string
}

// ParseFilter reads filter parameters from a query string. Numeric
// parameters are parsed strictly: garbage is an error, never a zero.
func ParseFilter(values url.Values) (Filter, error) {
	f := Filter{
		Location:  strings.TrimSpace(values.Get("location")),
		YachtType: strings.TrimSpace(values.Get("type")),
		Text:      strings.TrimSpace(values.Get("q")),
	}

	if raw := strings.TrimSpace(values.Get("capacity")); raw != "" {
		if _, _, err := parseCapacity(raw); err != nil {
			return Filter{}, err
		}
		f.Capacity = raw
	}
	if raw := strings.TrimSpace(values.Get("min_price")); raw != "" {
		amount, err := models.ParseAmount(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("min_price: %w", err)
		}
		f.MinHourly = &amount
	}
	if raw := strings.TrimSpace(values.Get("max_price")); raw != "" {
		amount, err := models.ParseAmount(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("max_price: %w", err)
		}
		f.MaxHourly = &amount
	}
	if f.MinHourly != nil && f.MaxHourly != nil && *f.MaxHourly < *f.MinHourly {
		return Filter{}, fmt.Errorf("max_price below min_price")
	}

	return f, nil
}

// Apply returns the yachts passing every active predicate.
func (f Filter) Apply(yachts []*models.Yacht) []*models.Yacht {
	out := make([]*models.Yacht, 0, len(yachts))
	for _, y := range yachts {
		if f.Matches(y) {
			out = append(out, y)
		}
	}
	return out
}

func (f Filter) Matches(y *models.Yacht) bool {
	if f.Location != "" && y.Location != f.Location {
		return false
	}
	if f.YachtType != "" && !strings.EqualFold(y.YachtType, f.YachtType) {
		return false
	}
	if f.Capacity != "" && !matchCapacity(f.Capacity, y.Capacity) {
		return false
	}
	// Диапазон цен: границы включительно, по почасовому тарифу
	if f.MinHourly != nil && y.HourlyPrice < *f.MinHourly {
		return false
	}
	if f.MaxHourly != nil && y.HourlyPrice > *f.MaxHourly {
		return false
	}
	if f.Text != "" && !matchText(f.Text, y) {
		return false
	}
	return true
}

// parseCapacity разбирает селектор вместимости. Форма "30+" означает
// нижнюю границу, обычное число — верхнюю.
func parseCapacity(raw string) (threshold int, atLeast bool, err error) {
	atLeast = strings.HasSuffix(raw, "+")
	numeric := strings.TrimSuffix(raw, "+")
	threshold, err = strconv.Atoi(numeric)
	if err != nil || threshold <= 0 {
		return 0, false, fmt.Errorf("capacity: not a positive number: %q", raw)
	}
	return threshold, atLeast, nil
}

func matchCapacity(raw string, capacity int) bool {
	threshold, atLeast, err := parseCapacity(raw)
	if err != nil {
		return false
	}
	if atLeast {
		return capacity >= threshold
	}
	return capacity <= threshold
}

func matchText(needle string, y *models.Yacht) bool {
	needle = strings.ToLower(needle)
	for _, hay := range []string{y.Name, y.Description, y.Location} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}
