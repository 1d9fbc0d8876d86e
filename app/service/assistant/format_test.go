package assistant

import (
	"strings"
	"testing"

	"shopassist/app/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price int64
		want  string
	}{
		{20_000_000, "20.000.000đ"},
		{1_500_000, "1.500.000đ"},
		{999, "999đ"},
		{1_000, "1.000đ"},
		{0, "Liên hệ"},
		{-5, "Liên hệ"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, formatPrice(tc.price))
	}
}

func TestInjectLinks(t *testing.T) {
	catalog := testProducts()

	t.Run("wraps names with anchors", func(t *testing.T) {
		got := injectLinks("Em gợi ý Laptop A cho Anh/Chị ạ.", catalog)

		assert.Contains(t, got, "<a href='/user/products/product-detail/1'")
		assert.Contains(t, got, ">Laptop A</a>")
	})

	t.Run("longest name first", func(t *testing.T) {
		got := injectLinks("Pro Max mạnh hơn Pro ạ.", catalog)

		assert.Contains(t, got, "product-detail/4")
		assert.Contains(t, got, ">Pro Max</a>")
		assert.Contains(t, got, "product-detail/3")
		// "Pro" inside the already linked "Pro Max" must stay untouched,
		// so exactly one link per product.
		assert.Equal(t, 1, strings.Count(got, "product-detail/4"))
		assert.Equal(t, 1, strings.Count(got, "product-detail/3"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := injectLinks("Anh/Chị xem thử Laptop B nhé.", catalog)
		twice := injectLinks(once, catalog)

		assert.Equal(t, once, twice)
	})
}

func TestReferenceBlock(t *testing.T) {
	catalog := testProducts()

	t.Run("empty for single product", func(t *testing.T) {
		assert.Empty(t, referenceBlock(catalog[:1]))
		assert.Empty(t, referenceBlock(nil))
	})

	t.Run("lists every product with price", func(t *testing.T) {
		got := referenceBlock(catalog[:2])

		assert.Contains(t, got, "Sản phẩm tham khảo")
		assert.Contains(t, got, ">Laptop A</a>")
		assert.Contains(t, got, ">Laptop B</a>")
		assert.Contains(t, got, "20.000.000đ")
		assert.Contains(t, got, "35.000.000đ")
	})
}

func TestProductInfo_FillsBlanksWithNA(t *testing.T) {
	info := productInfo(store.Product{Name: "Bare", Price: 1_000_000})

	require.Contains(t, info, "Tên: Bare")
	assert.Contains(t, info, "Giá: 1.000.000đ")
	assert.Contains(t, info, "CPU: N/A")
	assert.Contains(t, info, "RAM: N/A")
}

func TestProductListInfo_Numbered(t *testing.T) {
	got := productListInfo(testProducts()[:2])

	assert.Contains(t, got, "1. Laptop A")
	assert.Contains(t, got, "2. Laptop B")
	assert.Contains(t, got, "32GB")
}
