package filtering

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// SortKey selects the single ordering of the list.
type SortKey string

const (
	SortLatest     SortKey = "latest"
	SortOldest     SortKey = "oldest"
	SortMatchScore SortKey = "matchScore"
	SortSalaryHigh SortKey = "salaryHigh"
	SortSalaryLow  SortKey = "salaryLow"
)

// SortKeys lists the accepted keys in display order.
var SortKeys = []SortKey{SortLatest, SortOldest, SortMatchScore, SortSalaryHigh, SortSalaryLow}

// ParseSortKey accepts any known key case-insensitively; unknown or empty
// input falls back to latest with ok=false.
func ParseSortKey(s string) (SortKey, bool) {
	s = strings.TrimSpace(s)
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return SortLatest, false
}

// Sort orders jobs in place. The sort is stable: equal values keep their
// incoming order.
func Sort(jobs []ScoredJob, key SortKey) {
	var compare func(a, b ScoredJob) int

	switch key {
	case SortOldest:
		compare = func(a, b ScoredJob) int { return cmp.Compare(b.PostedDaysAgo, a.PostedDaysAgo) }
	case SortMatchScore:
		compare = func(a, b ScoredJob) int { return cmp.Compare(b.MatchScore, a.MatchScore) }
	case SortSalaryHigh:
		compare = func(a, b ScoredJob) int { return cmp.Compare(MaxSalary(b.SalaryRange), MaxSalary(a.SalaryRange)) }
	case SortSalaryLow:
		compare = func(a, b ScoredJob) int { return cmp.Compare(MaxSalary(a.SalaryRange), MaxSalary(b.SalaryRange)) }
	default:
		compare = func(a, b ScoredJob) int { return cmp.Compare(a.PostedDaysAgo, b.PostedDaysAgo) }
	}

	slices.SortStableFunc(jobs, compare)
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

// MaxSalary extracts the largest number of a salary text. "LPA" values are
// returned as-is; "k ... month" values are annualized into the same scale
// (x 12 / 100). Text without numbers yields 0.
func MaxSalary(salaryRange string) float64 {
	maxValue := 0.0
	found := false

	for _, token := range numberPattern.FindAllString(salaryRange, -1) {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		if !found || v > maxValue {
			maxValue = v
			found = true
		}
	}

	if !found {
		return 0
	}

	if strings.Contains(salaryRange, "LPA") {
		return maxValue
	}
	if strings.Contains(salaryRange, "k") && strings.Contains(salaryRange, "month") {
		return maxValue * 12 / 100
	}

	return maxValue
}
