package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCategory(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"tìm điện thoại mới", "Phone"},
		{"cần một chiếc smartphone", "Phone"},
		{"laptop cho sinh viên", "Computer"},
		{"máy tính văn phòng", "Computer"},
		{"có bán tai nghe không", "Accessory"},
		{"sản phẩm hot nhất", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, extractCategory(tc.message), "message: %s", tc.message)
	}
}

func TestExtractPriceBounds(t *testing.T) {
	t.Run("min", func(t *testing.T) {
		assert.Equal(t, int64(10_000_000), extractMinPrice("laptop từ 10 triệu"))
		assert.Equal(t, int64(15_000_000), extractMinPrice("trên 15tr"))
		assert.Equal(t, int64(0), extractMinPrice("laptop dưới 20 triệu"))
	})

	t.Run("max", func(t *testing.T) {
		assert.Equal(t, int64(20_000_000), extractMaxPrice("laptop dưới 20 triệu"))
		assert.Equal(t, int64(25_000_000), extractMaxPrice("đến 25 tr thôi"))
		assert.Equal(t, int64(0), extractMaxPrice("laptop từ 10 triệu"))
	})

	t.Run("budget", func(t *testing.T) {
		assert.Equal(t, int64(30_000_000), extractBudget("tầm 30 triệu"))
		assert.Equal(t, int64(0), extractBudget("không nói giá"))
	})
}

func TestExtractSearchKeyword(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"tìm mua laptop gaming", "laptop gaming"},
		{"Em muốn xem điện thoại!", "điện thoại"},
		{"có bán Laptop A không?", "có laptop a không"},
		{"laptop", "laptop"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, extractSearchKeyword(tc.message), "message: %s", tc.message)
	}
}
