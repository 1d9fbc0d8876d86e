package assistant

import (
	"testing"

	"shopassist/app/service/session"
	"shopassist/app/store"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent_Priority(t *testing.T) {
	empty := session.Snapshot{}

	cases := []struct {
		name    string
		message string
		snap    session.Snapshot
		want    Intent
	}{
		{"extreme price", "laptop nào đắt nhất", empty, IntentExtremePrice},
		{"extreme price cheapest", "điện thoại rẻ nhất shop", empty, IntentExtremePrice},
		{"compare beats category words", "so sánh điện thoại Pro và Pro Max", empty, IntentProductCompare},
		{"price inquiry", "Laptop A giá bao nhiêu", empty, IntentPriceInquiry},
		{"recommendation", "tư vấn laptop cho sinh viên", empty, IntentRecommendation},
		{"search by product word", "tìm điện thoại", empty, IntentProductSearch},
		{"search by action verb", "xem mẫu mới", empty, IntentProductSearch},
		{"greeting is general", "xin chào shop", empty, IntentGeneral},
		{"empty-ish is general", "   ", empty, IntentGeneral},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyIntent(tc.message, tc.snap))
		})
	}
}

func TestClassifyIntent_AnaphoraNeedsContext(t *testing.T) {
	discussed := snapshotWith(&store.Product{ID: 1, Name: "Laptop A"})

	t.Run("pronoun with context", func(t *testing.T) {
		assert.Equal(t, IntentAnaphoraDetail, classifyIntent("pin của nó dùng được lâu không", discussed))
	})

	t.Run("pronoun without context falls through", func(t *testing.T) {
		got := classifyIntent("pin của nó dùng được lâu không", session.Snapshot{})
		assert.Equal(t, IntentProductSearch, got)
	})

	t.Run("facet follow-up with context", func(t *testing.T) {
		assert.Equal(t, IntentAnaphoraDetail, classifyIntent("ram bao nhiêu", discussed))
	})

	t.Run("facet follow-up without context is a price question", func(t *testing.T) {
		assert.Equal(t, IntentPriceInquiry, classifyIntent("ram bao nhiêu", session.Snapshot{}))
	})

	t.Run("named price question stays price inquiry despite context", func(t *testing.T) {
		assert.Equal(t, IntentPriceInquiry, classifyIntent("Laptop B giá bao nhiêu", discussed))
	})
}
