package assistant

import (
	"context"
	"sync"
	"time"

	"shopassist/app/client/genai"
	"shopassist/app/service/session"
	"shopassist/app/store"
)

// fakeGenerator records prompts and replies with a canned text, so tests can
// assert both the generated path and the deterministic never-call paths.
type fakeGenerator struct {
	mu    sync.Mutex
	calls [][]genai.Turn
	reply string
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, turns []genai.Turn) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, turns)

	if f.err != nil {
		return "", f.err
	}

	return f.reply, nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func (f *fakeGenerator) lastInstruction() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.calls) == 0 {
		return ""
	}

	last := f.calls[len(f.calls)-1]

	return last[len(last)-1].Text
}

func testProducts() []store.Product {
	return []store.Product{
		{
			ID: 1, Name: "Laptop A", Description: "Laptop văn phòng mỏng nhẹ",
			Price: 20_000_000, Category: "Computer", Brand: "Asus",
			CPU: "Intel i5", RAM: "16GB", Battery: "70Wh", Monitor: "14 inch",
			Warranty: "24 tháng", Stock: 12, Active: true,
		},
		{
			ID: 2, Name: "Laptop B", Description: "Laptop gaming RTX 4060",
			Price: 35_000_000, Category: "Computer", Brand: "Dell",
			CPU: "Intel i7", RAM: "32GB", GraphicCard: "RTX 4060",
			Warranty: "12 tháng", Stock: 5, Active: true,
		},
		{
			ID: 3, Name: "Pro", Description: "Điện thoại nhỏ gọn",
			Price: 15_000_000, Category: "Phone", Brand: "Apple",
			Stock: 8, Active: true,
		},
		{
			ID: 4, Name: "Pro Max", Description: "Điện thoại cao cấp",
			Price: 30_000_000, Category: "Phone", Brand: "Apple",
			Stock: 3, Active: true,
		},
		{
			ID: 5, Name: "Hidden", Description: "Không bán nữa",
			Price: 9_000_000, Category: "Computer", Brand: "Asus",
			Stock: 0, Active: false,
		},
	}
}

func newTestService(gen *fakeGenerator, products []store.Product) *Service {
	return newService(
		store.NewMemory(products),
		gen,
		session.NewStore(time.Minute),
		nil,
		time.Minute,
	)
}

func snapshotWith(product *store.Product) session.Snapshot {
	return session.Snapshot{LastDiscussedProduct: product}
}
