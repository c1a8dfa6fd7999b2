package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in fils (1/100 AED). Integer arithmetic keeps
// price computation exact; floats never touch money paths.
type Amount int64

// ParseAmount принимает строку вида "1500" или "1500.50" и возвращает сумму
// в филсах. Нечисловой ввод отклоняется, а не превращается в ноль.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("negative amount %q", s)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}

	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if w < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}

	var f int64
	switch len(frac) {
	case 0:
	case 1:
		f, err = strconv.ParseInt(frac, 10, 64)
		f *= 10
	case 2:
		f, err = strconv.ParseInt(frac, 10, 64)
	default:
		return 0, fmt.Errorf("invalid amount %q: too many decimal places", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return Amount(w*100 + f), nil
}

// Mul returns the amount multiplied by a whole number of hours.
func (a Amount) Mul(n int) Amount {
	return a * Amount(n)
}

// MarshalJSON выводит сумму десятичным числом в дирхамах — в том же виде,
// в каком ее принимает ParseAmount, чтобы чтение и запись были симметричны.
func (a Amount) MarshalJSON() ([]byte, error) {
	whole := int64(a) / 100
	fils := int64(a) % 100
	if fils == 0 {
		return []byte(strconv.FormatInt(whole, 10)), nil
	}
	return []byte(fmt.Sprintf("%d.%02d", whole, fils)), nil
}

// UnmarshalJSON принимает число или числовую строку в дирхамах.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// String renders the amount in AED, omitting fils when whole ("AED 1,500").
func (a Amount) String() string {
	whole := int64(a) / 100
	fils := int64(a) % 100
	if fils < 0 {
		fils = -fils
	}

	grouped := groupThousands(whole)
	if fils == 0 {
		return "AED " + grouped
	}
	return fmt.Sprintf("AED %s.%02d", grouped, fils)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
