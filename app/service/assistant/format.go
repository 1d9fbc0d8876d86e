package assistant

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"shopassist/app/store"
)

// formatPrice renders VND with dot grouping and a trailing currency marker.
func formatPrice(price int64) string {
	if price <= 0 {
		return "Liên hệ"
	}

	digits := strconv.FormatInt(price, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteString("đ")

	return b.String()
}

func productLink(p store.Product) string {
	return fmt.Sprintf(
		"<a href='/user/products/product-detail/%d' style='color: #667eea; font-weight: 600; text-decoration: none;'>%s</a>",
		p.ID, p.Name)
}

var anchorRe = regexp.MustCompile(`(?is)<a [^>]*>.*?</a>`)

// injectLinks wraps every product name occurring in the text with its
// canonical hyperlink. Names are scanned longest first so a longer model
// name is never partially replaced by a shorter one hidden inside it, and
// text already inside an anchor is left alone, which makes the pass
// idempotent.
func injectLinks(text string, products []store.Product) string {
	byLength := append([]store.Product(nil), products...)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i].Name) > len(byLength[j].Name)
	})

	for _, p := range byLength {
		if p.Name == "" {
			continue
		}

		nameRe, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(p.Name))
		if err != nil {
			continue
		}

		text = replaceOutsideAnchors(text, nameRe, productLink(p))
	}

	return text
}

// replaceOutsideAnchors applies the replacement only to the segments of text
// that are not already part of an <a> element.
func replaceOutsideAnchors(text string, re *regexp.Regexp, replacement string) string {
	anchors := anchorRe.FindAllStringIndex(text, -1)
	if len(anchors) == 0 {
		return re.ReplaceAllString(text, replacement)
	}

	var b strings.Builder
	prev := 0

	for _, a := range anchors {
		b.WriteString(re.ReplaceAllString(text[prev:a[0]], replacement))
		b.WriteString(text[a[0]:a[1]])
		prev = a[1]
	}
	b.WriteString(re.ReplaceAllString(text[prev:], replacement))

	return b.String()
}

// referenceBlock lists the surfaced products with prices. Only rendered when
// more than one product is being shown.
func referenceBlock(products []store.Product) string {
	if len(products) <= 1 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n✨ <b>Sản phẩm tham khảo:</b>\n")

	for _, p := range products {
		b.WriteString(fmt.Sprintf(
			"• %s - <span style='color: #e53e3e; font-weight: bold;'>%s</span>\n",
			productLink(p), formatPrice(p.Price)))
	}

	return b.String()
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}

	return value
}

// productInfo is the deterministic fact block handed to the generation
// service. Raw catalog rows never go into a prompt in any other shape.
func productInfo(p store.Product) string {
	return fmt.Sprintf("Tên: %s\nGiá: %s\nCPU: %s\nRAM: %s\nPin: %s\nMàn hình: %s\nCard: %s\nBảo hành: %s\nMô tả: %s",
		p.Name, formatPrice(p.Price), orNA(p.CPU), orNA(p.RAM), orNA(p.Battery),
		orNA(p.Monitor), orNA(p.GraphicCard), orNA(p.Warranty), orNA(p.Description))
}

func productListInfo(products []store.Product) string {
	var b strings.Builder

	for i, p := range products {
		b.WriteString(fmt.Sprintf("%d. %s - %s | CPU: %s | RAM: %s | Giá: %s\n",
			i+1, p.Name, orNA(p.Description), orNA(p.CPU), orNA(p.RAM), formatPrice(p.Price)))
	}

	return b.String()
}
