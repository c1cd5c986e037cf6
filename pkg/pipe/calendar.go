package pipe

import (
	"strconv"
	"time"
	"unicode"
)

// referenceYear stands in for a missing year. It is a leap year so that a
// format without a year still accepts 02-29.
const referenceYear = 2000

type dateFields struct {
	year     int
	month    int
	day      int
	hour     int
	hour12   int
	has12    bool
	meridiem rune
}

// calendarValid reports whether a fully typed value names an existing
// date and time under the tokenized format.
func calendarValid(value []rune, tokens []DateToken) bool {
	fields := dateFields{year: referenceYear, month: 1, day: 1}

	for _, tok := range tokens {
		sub := substr(value, tok.Offset, tok.Length)
		if tok.Name == "A" || tok.Name == "a" {
			if len(sub) == 0 {
				continue
			}
			switch m := unicode.ToLower(sub[0]); m {
			case 'a', 'p':
				fields.meridiem = m
			default:
				return false
			}
			continue
		}

		digits := digitsOf(sub)
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return false
		}

		switch tok.Name {
		case "YYYY":
			fields.year = n
		case "YY":
			fields.year = expandTwoDigitYear(n)
		case "MM":
			fields.month = n
		case "DD":
			fields.day = n
		case "HH":
			fields.hour = n
		case "hh":
			fields.hour12 = n
			fields.has12 = true
		}
	}

	if fields.month < 1 || fields.month > 12 {
		return false
	}
	t := time.Date(fields.year, time.Month(fields.month), fields.day, 0, 0, 0, 0, time.UTC)
	if t.Year() != fields.year || int(t.Month()) != fields.month || t.Day() != fields.day {
		return false
	}

	hour := fields.hour
	if fields.has12 {
		hour = fields.hour12
		switch {
		case fields.meridiem == 'p' && hour < 12:
			hour += 12
		case fields.meridiem == 'a' && hour == 12:
			hour = 0
		}
	}
	return hour >= 0 && hour <= 23
}

// expandTwoDigitYear pivots at 69: 00-68 map to 2000-2068, 69-99 to 1969-1999.
func expandTwoDigitYear(n int) int {
	if n > 68 {
		return 1900 + n
	}
	return 2000 + n
}
