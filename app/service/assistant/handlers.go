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

// turn carries everything a handler may need: the raw message, the context
// snapshot and the single catalog snapshot taken for this turn.
type turn struct {
	message string
	lower   string
	snap    session.Snapshot
	catalog []store.Product
}

// outcome is a handler's result. mutate is applied to the conversation
// state under its lock when the turn commits.
type outcome struct {
	message  string
	products []store.Product
	mutate   func(*session.State)
}

const (
	askWhichProduct  = "Em chưa hiểu Anh/Chị đang hỏi về sản phẩm nào ạ. Anh/Chị có thể nói rõ hơn được không?"
	askCompareNames  = "Em cần tên 2 sản phẩm để so sánh ạ. Ví dụ: 'So sánh Asus TUF và MSI Titan' 😊"
	askWhichPrice    = "Em chưa rõ Anh/Chị hỏi giá sản phẩm nào ạ. Anh/Chị cho em tên cụ thể nhé! 😊"
	emptyCategoryMsg = "Hiện tại bên em chưa có sản phẩm nào thuộc danh mục này ạ."
)

// ==================== anaphora ====================

var hardwareFacets = []struct {
	re   *regexp.Regexp
	line func(p store.Product) string
}{
	{regexp.MustCompile(`ram|bộ nhớ`), func(p store.Product) string {
		return "💾 RAM: " + orNA(p.RAM)
	}},
	{regexp.MustCompile(`cpu|chip|bộ xử lý|vi xử lý`), func(p store.Product) string {
		return "⚡ CPU: " + orNA(p.CPU)
	}},
	{regexp.MustCompile(`pin|battery|dung lượng pin`), func(p store.Product) string {
		return "🔋 Pin: " + orNA(p.Battery)
	}},
	{regexp.MustCompile(`màn hình|monitor|display|screen`), func(p store.Product) string {
		return "🖥️ Màn hình: " + orNA(p.Monitor)
	}},
	{regexp.MustCompile(`card|đồ họa|gpu|vga`), func(p store.Product) string {
		return "🎮 Card đồ họa: " + orNA(p.GraphicCard)
	}},
	{regexp.MustCompile(`giá|bao nhiêu|tiền`), func(p store.Product) string {
		return "💰 Giá: " + formatPrice(p.Price)
	}},
	{regexp.MustCompile(`bảo hành|warranty`), func(p store.Product) string {
		return "🛡️ Bảo hành: " + orNA(p.Warranty)
	}},
}

// handleAnaphora answers follow-up questions about the last discussed
// product. Known hardware facets are answered from catalog facts only; the
// generation service is consulted just for questions outside that set, so
// it can never paraphrase a catalog value.
func (s *Service) handleAnaphora(ctx context.Context, t *turn) (outcome, error) {
	product := t.snap.LastDiscussedProduct
	if product == nil {
		return outcome{message: askWhichProduct}, nil
	}

	var facts []string
	for _, facet := range hardwareFacets {
		if facet.re.MatchString(t.lower) {
			facts = append(facts, facet.line(*product))
		}
	}

	if len(facts) == 0 {
		instruction := fmt.Sprintf(
			"Sản phẩm:\n%s\n\nCâu hỏi: %s\n\nTrả lời NGẮN GỌN đúng câu hỏi. Kết thúc: 'Anh/Chị muốn biết thêm gì về %s không ạ?'",
			productInfo(*product), t.message, product.Name)

		text, err := s.generate(ctx, t.snap.History, instruction)
		if err != nil {
			return outcome{}, err
		}

		return outcome{
			message:  injectLinks(text, t.catalog),
			products: []store.Product{*product},
		}, nil
	}

	var b strings.Builder
	b.WriteString("Dạ, về " + productLink(*product) + ":\n\n")
	for _, fact := range facts {
		b.WriteString(fact + "\n")
	}
	b.WriteString("\n💡 Anh/Chị muốn biết thêm thông tin gì về " + product.Name + " không ạ?")

	return outcome{
		message:  b.String(),
		products: []store.Product{*product},
	}, nil
}

// ==================== extreme price ====================

func (s *Service) handleExtremePrice(ctx context.Context, t *turn) (outcome, error) {
	isMostExpensive := strings.Contains(t.lower, "đắt") || strings.Contains(t.lower, "cao")

	products := t.catalog
	if category := extractCategory(t.message); category != "" {
		products = pie.Filter(products, func(p store.Product) bool {
			return strings.EqualFold(p.Category, category)
		})
	}

	if len(products) == 0 {
		return outcome{message: emptyCategoryMsg}, nil
	}

	sorted := pie.SortUsing(products, func(a, b store.Product) bool {
		if isMostExpensive {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	})
	target := sorted[0]

	polarity := "giá rẻ/tiết kiệm"
	if isMostExpensive {
		polarity = "cao cấp/đắt tiền"
	}

	instruction := fmt.Sprintf(
		"Khách hỏi: '%s'\nSản phẩm tìm được: %s\nGiá: %s\n\nNhiệm vụ: Giới thiệu đây là sản phẩm %s nhất hiện có. Nêu ngắn gọn điểm nổi bật của nó.",
		t.message, target.Name, formatPrice(target.Price), polarity)

	text, err := s.generate(ctx, t.snap.History, instruction)
	if err != nil {
		return outcome{}, err
	}

	return outcome{
		message:  injectLinks(text, t.catalog),
		products: []store.Product{target},
		mutate: func(state *session.State) {
			state.SetLastDiscussedProduct(target)
			state.SetLastSearchResults([]store.Product{target})
		},
	}, nil
}

// ==================== product search ====================

func (s *Service) handleProductSearch(ctx context.Context, t *turn) (outcome, error) {
	keyword := extractSearchKeyword(t.message)
	filters := searchFilters{
		category: extractCategory(t.message),
		minPrice: extractMinPrice(t.message),
		maxPrice: extractMaxPrice(t.message),
	}

	// Category and price bounds intersect the producing tier only.
	found, err := s.searchCatalog(ctx, keyword, filters, t.catalog)
	if err != nil {
		return outcome{}, err
	}

	if len(found) == 0 {
		// A fruitless search with a clear advisory intent ("chs game" with a
		// typo) reroutes to the recommendation path instead of apologising.
		if recommendIntent(t.lower) != recoGeneral {
			return s.handleRecommendation(ctx, t)
		}

		return s.handleNoProductFound(ctx, t, keyword, filters.category)
	}

	found = limitProducts(found, searchLimit)

	instruction := fmt.Sprintf(
		"Khách tìm: '%s'\nSản phẩm tìm thấy:\n%s\n\nNhiệm vụ: Giới thiệu chung về các sản phẩm này trong 1-2 câu. Mời khách xem chi tiết bên dưới.",
		keyword, productListInfo(found))

	text, err := s.generate(ctx, t.snap.History, instruction)
	if err != nil {
		return outcome{}, err
	}

	first := found[0]
	results := found

	return outcome{
		message:  injectLinks(text, t.catalog) + referenceBlock(found),
		products: found,
		mutate: func(state *session.State) {
			state.SetLastSearchKeyword(keyword)
			state.SetLastSearchResults(results)
			state.SetLastDiscussedProduct(first)
		},
	}, nil
}

func (s *Service) handleNoProductFound(ctx context.Context, t *turn, keyword, category string) (outcome, error) {
	alternatives := t.catalog
	if category != "" {
		alternatives = pie.Filter(alternatives, func(p store.Product) bool {
			return strings.EqualFold(p.Category, category)
		})
	}
	alternatives = limitProducts(alternatives, searchLimit)

	instruction := fmt.Sprintf(
		"Khách tìm: '%s' -> KHÔNG CÓ trong kho.\nSản phẩm khác đang có:\n%s\n\nNhiệm vụ: Xin lỗi khách nhẹ nhàng và gợi ý khách xem thử các mẫu này.",
		keyword, productListInfo(alternatives))

	text, err := s.generate(ctx, t.snap.History, instruction)
	if err != nil {
		return outcome{}, err
	}

	return outcome{
		message:  injectLinks(text, t.catalog) + referenceBlock(alternatives),
		products: alternatives,
		mutate: func(state *session.State) {
			state.SetLastSearchKeyword(keyword)
		},
	}, nil
}

// ==================== compare ====================

func (s *Service) handleCompare(ctx context.Context, t *turn) (outcome, error) {
	candidates := findNamedProducts(t.catalog, t.lower, 2)

	if len(candidates) < 2 {
		if len(t.snap.LastSearchResults) >= 2 {
			candidates = t.snap.LastSearchResults[:2]
		} else {
			// Not enough to compare; ask instead of guessing. No generation
			// call for a clarification.
			return outcome{message: askCompareNames}, nil
		}
	}

	p1, p2 := candidates[0], candidates[1]

	instruction := fmt.Sprintf(
		"So sánh 2 sản phẩm:\n\nSẢN PHẨM 1:\n%s\n\nSẢN PHẨM 2:\n%s\n\nYêu cầu: NGẮN GỌN, nêu điểm mạnh từng con. Kết thúc: 'Anh/Chị quan tâm yếu tố nào nhất ạ?'",
		productInfo(p1), productInfo(p2))

	text, err := s.generate(ctx, t.snap.History, instruction)
	if err != nil {
		return outcome{}, err
	}

	return outcome{
		message:  injectLinks(text, t.catalog),
		products: []store.Product{p1, p2},
	}, nil
}

// ==================== price inquiry ====================

// handlePriceInquiry is fully deterministic: a price is never delegated to
// the generation service.
func (s *Service) handlePriceInquiry(_ context.Context, t *turn) (outcome, error) {
	target, found := findNamedProduct(t.catalog, t.lower)

	if !found && t.snap.LastDiscussedProduct != nil {
		target = *t.snap.LastDiscussedProduct
		found = true
	}

	if !found {
		return outcome{message: askWhichPrice}, nil
	}

	message := fmt.Sprintf(
		"Giá của %s là %s ạ.\n\nAnh/Chị muốn biết thêm gì về %s không ạ?",
		productLink(target), formatPrice(target.Price), target.Name)

	return outcome{
		message:  message,
		products: []store.Product{target},
		mutate: func(state *session.State) {
			state.SetLastDiscussedProduct(target)
		},
	}, nil
}

// ==================== general ====================

func (s *Service) handleGeneral(ctx context.Context, t *turn) (outcome, error) {
	instruction := fmt.Sprintf("Khách hỏi: %s\n\nTrả lời NGẮN GỌN (2-3 câu).", t.message)

	text, err := s.generate(ctx, t.snap.History, instruction)
	if err != nil {
		return outcome{}, err
	}

	return outcome{message: text}, nil
}
