package domain

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in Indian rupees held as integer paise.
type Money struct {
	Paise int64
}

var ErrInvalidAmount = errors.New("invalid amount")

const rupeeSymbol = "₹"

// Rupees builds a whole-rupee amount.
func Rupees(r int64) Money { return Money{Paise: r * 100} }

func (m Money) IsZero() bool     { return m.Paise == 0 }
func (m Money) IsNegative() bool { return m.Paise < 0 }

func (m Money) Add(o Money) Money { return Money{Paise: m.Paise + o.Paise} }

// Lakhs returns the amount in lakhs (1 lakh = 1,00,000 rupees).
func (m Money) Lakhs() float64 {
	return float64(m.Paise) / 100 / 100000
}

// String renders the amount with Indian digit grouping, e.g. "₹ 1,25,000" or
// "₹ 2,10,000.50". Whole-rupee amounts omit the fractional part.
func (m Money) String() string {
	p := m.Paise
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	out := rupeeSymbol + " " + sign + groupIndian(strconv.FormatInt(p/100, 10))
	if frac := p % 100; frac != 0 {
		out += "." + twoDigits(frac)
	}
	return out
}

// LakhsString renders the amount in lakhs with one decimal, e.g. "₹4.8L".
func (m Money) LakhsString() string {
	return rupeeSymbol + strconv.FormatFloat(m.Lakhs(), 'f', 1, 64) + "L"
}

// groupIndian groups a digit string as 12,34,567: the last three digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// ParseINR parses a rupee display amount into paise.
//
// It accepts an optional "₹", "Rs", "Rs." or "INR" prefix, grouping commas and
// spaces, and at most two decimal places. Negative amounts are rejected.
//
// Examples:
//
//	ParseINR("₹ 1,25,000")   -> 12500000 paise
//	ParseINR("Rs. 85,000.5") -> 8500050 paise
//	ParseINR("₹ 0")          -> 0 paise
func ParseINR(s string) (Money, error) {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{rupeeSymbol, "INR", "Rs.", "Rs"} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	s = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" || !allDigits(intPart) || (hasFrac && (fracPart == "" || len(fracPart) > 2 || !allDigits(fracPart))) {
		return Money{}, ErrInvalidAmount
	}

	rupees, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxRupees = (1<<63 - 1) / 100
	if rupees > maxRupees-1 {
		return Money{}, ErrInvalidAmount
	}

	var paise int64
	if hasFrac {
		if len(fracPart) == 1 {
			fracPart += "0"
		}
		paise, _ = strconv.ParseInt(fracPart, 10, 64)
	}
	return Money{Paise: rupees*100 + paise}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
