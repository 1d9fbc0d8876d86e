package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

const million = 1_000_000

var categoryRules = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`điện thoại|phone|smartphone|đtdd|dt`), "Phone"},
	{regexp.MustCompile(`laptop|máy tính|macbook|notebook`), "Computer"},
	{regexp.MustCompile(`phụ kiện|accessory|tai nghe|sạc|cáp`), "Accessory"},
}

// extractCategory maps locale synonyms to a canonical category name,
// or "" when nothing matches.
func extractCategory(message string) string {
	lower := strings.ToLower(message)

	for _, rule := range categoryRules {
		if rule.re.MatchString(lower) {
			return rule.category
		}
	}

	return ""
}

var (
	minPriceRe = regexp.MustCompile(`(?:từ|trên)\s*(\d+)\s*(?:triệu|tr)`)
	maxPriceRe = regexp.MustCompile(`(?:dưới|đến)\s*(\d+)\s*(?:triệu|tr)`)
	budgetRe   = regexp.MustCompile(`(\d+)\s*(?:triệu|tr|million)`)
)

func extractMinPrice(message string) int64 {
	return extractMillions(minPriceRe, message)
}

func extractMaxPrice(message string) int64 {
	return extractMillions(maxPriceRe, message)
}

// extractBudget is the single-ceiling variant used by recommendations.
func extractBudget(message string) int64 {
	return extractMillions(budgetRe, message)
}

// extractMillions parses "N triệu" style amounts; 0 means unbounded.
func extractMillions(re *regexp.Regexp, message string) int64 {
	m := re.FindStringSubmatch(strings.ToLower(message))
	if m == nil {
		return 0
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}

	return n * million
}

var (
	stopPhraseRe  = regexp.MustCompile(`\b(tìm kiếm|tìm|mua|xem|có|bán|cho tôi|giúp tôi|em muốn|tôi cần|cho em)\b`)
	punctuationRe = regexp.MustCompile(`[?!.,]`)
	multiSpaceRe  = regexp.MustCompile(`\s+`)
)

// extractSearchKeyword strips polite fillers and action verbs, leaving the
// free-text catalog query.
func extractSearchKeyword(message string) string {
	keyword := strings.ToLower(message)
	keyword = stopPhraseRe.ReplaceAllString(keyword, "")
	keyword = punctuationRe.ReplaceAllString(keyword, "")
	keyword = multiSpaceRe.ReplaceAllString(keyword, " ")

	return strings.TrimSpace(keyword)
}
