package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"shopassist/app/service/session"
	"shopassist/app/store"

	"github.com/elliotchance/pie/v2"
)

type recoIntent string

const (
	recoGaming     recoIntent = "gaming"
	recoPriceRange recoIntent = "price_range"
	recoOffice     recoIntent = "office"
	recoPremium    recoIntent = "premium"
	recoBudget     recoIntent = "budget"
	recoGeneral    recoIntent = "general"
)

var recoRules = []struct {
	re     *regexp.Regexp
	intent recoIntent
}{
	// "chs game" catches a common typo for "chơi game".
	{regexp.MustCompile(`gaming|game|chs game|chơi game|đồ họa|render|rtx|gtx`), recoGaming},
	{regexp.MustCompile(`\d+\s*(?:triệu|tr).*đến.*\d+|(?:từ|dưới|trên).*\d+.*(?:triệu|tr)`), recoPriceRange},
	{regexp.MustCompile(`văn phòng|office|học tập|sinh viên|nhẹ|mỏng`), recoOffice},
	{regexp.MustCompile(`cao cấp|premium|flagship|đắt|xịn`), recoPremium},
	{regexp.MustCompile(`rẻ|giá tốt|phải chăng|tiết kiệm|budget`), recoBudget},
}

func recommendIntent(lower string) recoIntent {
	for _, rule := range recoRules {
		if rule.re.MatchString(lower) {
			return rule.intent
		}
	}

	return recoGeneral
}

func gamingText(p store.Product) string {
	return strings.ToLower(p.Name + " " + p.Description + " " + orNA(p.GraphicCard))
}

func officeText(p store.Product) string {
	return strings.ToLower(p.Name + " " + p.Description)
}

// recommendProducts applies the sub-intent's filter and sort order over the
// turn's catalog snapshot. Gaming and premium favour expensive machines,
// office, budget and price ranges favour cheap ones.
func recommendProducts(intent recoIntent, message string, catalog []store.Product) []store.Product {
	products := catalog
	if category := extractCategory(message); category != "" {
		products = pie.Filter(products, func(p store.Product) bool {
			return strings.EqualFold(p.Category, category)
		})
	}

	minPrice := extractMinPrice(message)
	maxPrice := extractMaxPrice(message)

	inRange := func(p store.Product) bool {
		if minPrice > 0 && p.Price < minPrice {
			return false
		}
		if maxPrice > 0 && p.Price > maxPrice {
			return false
		}
		return true
	}

	priceAsc := func(a, b store.Product) bool { return a.Price < b.Price }
	priceDesc := func(a, b store.Product) bool { return a.Price > b.Price }

	switch intent {
	case recoGaming:
		products = pie.Filter(products, func(p store.Product) bool {
			t := gamingText(p)
			return inRange(p) && (strings.Contains(t, "gaming") || strings.Contains(t, "rtx") ||
				strings.Contains(t, "gtx") || strings.Contains(t, "game"))
		})
		products = pie.SortUsing(products, priceDesc)
	case recoOffice:
		products = pie.Filter(products, func(p store.Product) bool {
			t := officeText(p)
			return inRange(p) && (strings.Contains(t, "văn phòng") || strings.Contains(t, "office") ||
				strings.Contains(t, "business"))
		})
		products = pie.SortUsing(products, priceAsc)
	case recoPriceRange:
		products = pie.SortUsing(pie.Filter(products, inRange), priceAsc)
	case recoPremium:
		products = pie.SortUsing(products, priceDesc)
	case recoBudget:
		products = pie.SortUsing(products, priceAsc)
	}

	return limitProducts(products, recommendLimit)
}

func (s *Service) handleRecommendation(ctx context.Context, t *turn) (outcome, error) {
	intent := recommendIntent(t.lower)
	recommended := recommendProducts(intent, t.message, t.catalog)

	if budget := extractBudget(t.message); budget > 0 {
		recommended = pie.Filter(recommended, func(p store.Product) bool {
			return p.Price <= budget
		})
	}

	// Never answer a recommendation with nothing: fall back to the first
	// active entries system-wide.
	if len(recommended) == 0 {
		recommended = limitProducts(t.catalog, searchLimit)
	}

	instruction := fmt.Sprintf(
		"Khách đang quan tâm: '%s'\nNhu cầu phát hiện: %s\n\nSản phẩm phù hợp nhất trong kho:\n%s\n\nNhiệm vụ: Đừng xin lỗi. Hãy chào khách và giới thiệu ngay các sản phẩm phù hợp này. Nêu lý do tại sao nó hợp với nhu cầu (ví dụ: chơi game mượt, pin trâu...).",
		t.message, intent, productListInfo(recommended))

	text, err := s.generate(ctx, t.snap.History, instruction)
	if err != nil {
		return outcome{}, err
	}

	results := recommended

	out := outcome{
		message:  injectLinks(text, t.catalog) + referenceBlock(recommended),
		products: recommended,
	}

	if len(results) > 0 {
		first := results[0]
		out.mutate = func(state *session.State) {
			state.SetLastSearchResults(results)
			state.SetLastDiscussedProduct(first)
		}
	}

	return out, nil
}
