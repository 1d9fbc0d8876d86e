package assistant

import (
	"regexp"
	"strings"

	"shopassist/app/service/session"
)

var anaphoraKeywords = []string{
	"nó", "cái đó", "sản phẩm đó", "con đó", "cái này", "thằng này",
	"em đó", "thằng nào", "cái nào",
}

var productKeywords = []string{
	"laptop", "điện thoại", "máy tính", "iphone", "samsung", "dell",
	"asus", "gaming", "văn phòng", "học sinh", "sinh viên", "ram", "cpu",
	"pin", "màn hình", "card đồ họa", "giá", "tìm", "mua", "so sánh", "phone",
}

// followUpFacetRe marks hardware follow-ups ("ram bao nhiêu") that read as
// anaphoric once a product is already under discussion, even without a
// pronoun. Price words are excluded so named price questions still reach the
// price-inquiry handler.
var followUpFacetRe = regexp.MustCompile(`\bram\b|bộ nhớ|\bcpu\b|\bchip\b|\bpin\b|battery|màn hình|card đồ họa|\bgpu\b|\bvga\b|bảo hành|warranty`)

var (
	extremePriceRe   = regexp.MustCompile(`đắt nhất|rẻ nhất|cao nhất|thấp nhất|max price|min price`)
	compareRe        = regexp.MustCompile(`so sánh|khác nhau|hơn|tốt hơn|giống|vs|với`)
	priceInquiryRe   = regexp.MustCompile(`giá|bao nhiêu|giá bao nhiêu|giá cả|chi phí`)
	recommendationRe = regexp.MustCompile(`tư vấn|gợi ý|nên mua|nên chọn|đề xuất|recommend|máy nào|con nào|loại nào`)
	actionVerbRe     = regexp.MustCompile(`tìm|mua|có|xem`)
)

type intentRule struct {
	intent Intent
	match  func(lower string, snap session.Snapshot) bool
}

// intentRules is evaluated top to bottom, first match wins. Several trigger
// vocabularies overlap ("so sánh" also contains product words), so the order
// here is part of the contract.
var intentRules = []intentRule{
	{IntentAnaphoraDetail, func(lower string, snap session.Snapshot) bool {
		if snap.LastDiscussedProduct == nil {
			return false
		}
		return containsAny(lower, anaphoraKeywords) || followUpFacetRe.MatchString(lower)
	}},
	{IntentExtremePrice, matchRe(extremePriceRe)},
	{IntentProductCompare, matchRe(compareRe)},
	{IntentPriceInquiry, matchRe(priceInquiryRe)},
	{IntentRecommendation, matchRe(recommendationRe)},
	{IntentProductSearch, func(lower string, _ session.Snapshot) bool {
		return containsAny(lower, productKeywords) || actionVerbRe.MatchString(lower)
	}},
}

func matchRe(re *regexp.Regexp) func(string, session.Snapshot) bool {
	return func(lower string, _ session.Snapshot) bool {
		return re.MatchString(lower)
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}

// classifyIntent is deterministic and side-effect-free.
func classifyIntent(message string, snap session.Snapshot) Intent {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range intentRules {
		if rule.match(lower, snap) {
			return rule.intent
		}
	}

	return IntentGeneral
}
