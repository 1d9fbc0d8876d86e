package assistant

import (
	"errors"

	"shopassist/app/store"
)

type Intent string

const (
	IntentAnaphoraDetail Intent = "anaphora_detail"
	IntentExtremePrice   Intent = "extreme_price"
	IntentProductSearch  Intent = "product_search"
	IntentProductCompare Intent = "product_compare"
	IntentPriceInquiry   Intent = "price_inquiry"
	IntentRecommendation Intent = "recommendation"
	IntentGeneral        Intent = "general"
)

var (
	ErrEmptyMessage     = errors.New("empty message")
	ErrGenerationFailed = errors.New("generation service failed")
)

// Response is what a turn hands back to the HTTP layer. Products lists the
// catalog entries actually surfaced in the message text.
type Response struct {
	SessionID string        `json:"session_id"`
	Message   string        `json:"message"`
	Products  []ProductView `json:"products,omitempty"`
}

type ProductView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	CPU         string `json:"cpu,omitempty"`
	RAM         string `json:"ram,omitempty"`
	Battery     string `json:"battery,omitempty"`
	GraphicCard string `json:"graphicCard,omitempty"`
	Monitor     string `json:"monitor,omitempty"`
	OS          string `json:"os,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Warranty    string `json:"warranty,omitempty"`
	Brand       string `json:"brandName,omitempty"`
	Category    string `json:"categoryName,omitempty"`
}

func viewOf(p store.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       formatPrice(p.Price),
		CPU:         p.CPU,
		RAM:         p.RAM,
		Battery:     p.Battery,
		GraphicCard: p.GraphicCard,
		Monitor:     p.Monitor,
		OS:          p.OS,
		Thumbnail:   p.Thumbnail,
		Warranty:    p.Warranty,
		Brand:       p.Brand,
		Category:    p.Category,
	}
}

func viewsOf(products []store.Product) []ProductView {
	if len(products) == 0 {
		return nil
	}

	result := make([]ProductView, 0, len(products))
	for _, p := range products {
		result = append(result, viewOf(p))
	}

	return result
}
