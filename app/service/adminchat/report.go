package adminchat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"shopassist/app/store"

	"github.com/elliotchance/pie/v2"
)

const lowStockThreshold = 10

// report is the deterministic data block substituted for the product
// resolver in the admin variant: everything the generator may talk about
// is aggregated here first.
type report struct {
	totalProducts  int64
	totalOrders    int64
	totalCustomers int64

	products []store.Product
	orders   []store.Order
}

func (s *Service) collectReport(ctx context.Context) (*report, error) {
	r := &report{}
	var err error

	if r.totalProducts, err = s.store.CountProducts(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if r.totalCustomers, err = s.store.CountCustomers(ctx); err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if r.products, err = s.store.FindActive(ctx); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if r.orders, err = s.store.FindAllOrders(ctx); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	r.totalOrders = int64(len(r.orders))

	return r, nil
}

func (r *report) format() string {
	var b strings.Builder

	b.WriteString("1. 🏢 TỔNG QUAN HỆ THỐNG\n")
	b.WriteString(r.overview())
	b.WriteString("\n2. 📦 THÔNG TIN SẢN PHẨM\n")
	b.WriteString(r.productInsights())
	b.WriteString("\n3. 💰 ĐƠN HÀNG & DOANH THU\n")
	b.WriteString(r.orderInsights())
	b.WriteString("\n4. 👥 KHÁCH HÀNG\n")
	b.WriteString(fmt.Sprintf("    Tổng số khách hàng: %d\n", r.totalCustomers))
	b.WriteString("\n5. ⚠️ CẢNH BÁO & VẤN ĐỀ\n")
	b.WriteString(r.alerts())

	return b.String()
}

func (r *report) overview() string {
	return fmt.Sprintf("    Tổng sản phẩm: %d\n    Tổng đơn hàng: %d\n    Tổng khách hàng: %d\n",
		r.totalProducts, r.totalOrders, r.totalCustomers)
}

// productSales sums sold quantities per product over shipped and delivered
// orders.
func (r *report) productSales() map[int64]int {
	sales := make(map[int64]int)

	for _, order := range r.orders {
		if order.Status != store.OrderDelivered && order.Status != store.OrderShipping {
			continue
		}
		for _, d := range order.Details {
			sales[d.ProductID] += d.Quantity
		}
	}

	return sales
}

func (r *report) topSellers(limit int) []store.Product {
	sales := r.productSales()
	if len(sales) == 0 {
		return nil
	}

	sold := pie.Filter(r.products, func(p store.Product) bool {
		return sales[p.ID] > 0
	})
	sort.SliceStable(sold, func(i, j int) bool {
		return sales[sold[i].ID] > sales[sold[j].ID]
	})

	if len(sold) > limit {
		sold = sold[:limit]
	}

	return sold
}

func (r *report) productInsights() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("    Tổng số sản phẩm đang bán: %d\n", len(r.products)))

	sales := r.productSales()
	top := r.topSellers(5)

	if len(top) > 0 {
		b.WriteString("    🏆 TOP 5 SẢN PHẨM BÁN CHẠY NHẤT:\n")
		for i, p := range top {
			b.WriteString(fmt.Sprintf("       %d. %s - Đã bán: %d sản phẩm - Giá: %s\n",
				i+1, p.Name, sales[p.ID], formatPrice(p.Price)))
		}
	} else {
		b.WriteString("    ℹ️ Chưa có dữ liệu bán hàng\n")
	}

	lowStock := pie.Filter(r.products, func(p store.Product) bool {
		return p.Stock < lowStockThreshold
	})
	sort.SliceStable(lowStock, func(i, j int) bool {
		return lowStock[i].Stock < lowStock[j].Stock
	})
	if len(lowStock) > 10 {
		lowStock = lowStock[:10]
	}

	if len(lowStock) > 0 {
		b.WriteString(fmt.Sprintf("    ⚠️ SẢN PHẨM SẮP HẾT HÀNG (<%d):\n", lowStockThreshold))
		for _, p := range lowStock {
			b.WriteString(fmt.Sprintf("       %s - Còn: %d - Giá: %s\n",
				p.Name, p.Stock, formatPrice(p.Price)))
		}
	} else {
		b.WriteString(fmt.Sprintf("    ✅ Tất cả sản phẩm đều đủ hàng (>%d)\n", lowStockThreshold))
	}

	if len(r.products) > 0 {
		var total int64
		for _, p := range r.products {
			total += p.Price
		}
		b.WriteString(fmt.Sprintf("    📊 Giá trung bình: %s\n", formatPrice(total/int64(len(r.products)))))
	}

	return b.String()
}

func (r *report) orderInsights() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("    Tổng số đơn hàng: %d\n", len(r.orders)))

	if len(r.orders) == 0 {
		b.WriteString("    Chưa có đơn hàng nào\n")
		return b.String()
	}

	var revenue int64
	statusCount := make(map[store.OrderStatus]int)

	for _, order := range r.orders {
		revenue += order.TotalPrice
		statusCount[order.Status]++
	}

	b.WriteString(fmt.Sprintf("    💰 Tổng doanh thu: %s\n", formatPrice(revenue)))
	b.WriteString(fmt.Sprintf("    Giá trị đơn hàng TB: %s\n", formatPrice(revenue/int64(len(r.orders)))))

	b.WriteString("    📋 Phân bổ trạng thái:\n")
	for _, status := range []store.OrderStatus{
		store.OrderPending, store.OrderCompleted, store.OrderShipping,
		store.OrderDelivered, store.OrderCancelled,
	} {
		if count := statusCount[status]; count > 0 {
			b.WriteString(fmt.Sprintf("       %s: %d đơn\n", statusName(status), count))
		}
	}

	return b.String()
}

func (r *report) alerts() string {
	var b strings.Builder
	alertCount := 0

	outOfStock := pie.Filter(r.products, func(p store.Product) bool {
		return p.Stock == 0
	})
	if len(outOfStock) > 0 {
		b.WriteString(fmt.Sprintf("    ⚠️ Có %d sản phẩm HẾT HÀNG\n", len(outOfStock)))
		alertCount++
	}

	pending := pie.Filter(r.orders, func(o store.Order) bool {
		return o.Status == store.OrderPending
	})
	if len(pending) > 0 {
		b.WriteString(fmt.Sprintf("    ⚠️ Có %d đơn hàng CHỜ XỬ LÝ\n", len(pending)))
		alertCount++
	}

	if alertCount == 0 {
		b.WriteString("    ✅ Không có cảnh báo nào. Hệ thống hoạt động tốt!")
	}

	return b.String()
}

func statusName(status store.OrderStatus) string {
	switch status {
	case store.OrderPending:
		return "Chờ xử lý"
	case store.OrderCompleted:
		return "Đã xác nhận"
	case store.OrderShipping:
		return "Đang giao"
	case store.OrderDelivered:
		return "Hoàn thành"
	case store.OrderCancelled:
		return "Đã hủy"
	default:
		return "Không xác định"
	}
}

func formatPrice(price int64) string {
	if price <= 0 {
		return "Liên hệ"
	}

	digits := fmt.Sprintf("%d", price)

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
