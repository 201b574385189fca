package measure

import (
	"regexp"
	"strconv"
	"strings"

	"norya.com/report/types"
)

var referenceNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseReferenceRange pulls the first two numbers out of a free-form
// reference phrase like "12-16 g/dL" or "0,27-4,2 mIU/L". Fewer than two
// numbers yields nil: one-sided phrases ("less than 5") deliberately produce
// no range, the measurement then simply gets no chart.
func ParseReferenceRange(reference *string) *types.ReferenceRange {
	if reference == nil {
		return nil
	}
	phrase := strings.TrimSpace(*reference)
	if phrase == "" {
		return nil
	}
	phrase = strings.ReplaceAll(phrase, ",", ".")
	numbers := referenceNumber.FindAllString(phrase, 2)
	if len(numbers) < 2 {
		return nil
	}
	low, errLow := strconv.ParseFloat(numbers[0], 64)
	high, errHigh := strconv.ParseFloat(numbers[1], 64)
	if errLow != nil || errHigh != nil {
		return nil
	}
	if low > high {
		low, high = high, low
	}
	return &types.ReferenceRange{Low: low, High: high}
}
