package domain

type Product struct {
	ID        string  `db:"id" json:"id"`
	Title     string  `db:"title" json:"title"`
	Price     float64 `db:"price" json:"price"`
	Image     string  `db:"image" json:"image"`
	Category  string  `db:"category" json:"category"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}

type OrderItem struct {
	ProductID string  `json:"productId,omitempty"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Image     string  `json:"image,omitempty"`
}

type Order struct {
	ID          string      `db:"id" json:"id"`
	UserID      *string     `db:"user_id" json:"user"`
	UserName    *string     `db:"user_name" json:"userName"`
	UserEmail   *string     `db:"user_email" json:"userEmail"`
	ItemsJSON   string      `db:"items_json" json:"-"`
	Items       []OrderItem `json:"items"`
	Subtotal    float64     `db:"subtotal" json:"subtotal"`
	DeliveryFee float64     `db:"delivery_fee" json:"deliveryFee"`
	Total       float64     `db:"total" json:"total"`
	Status      string      `db:"status" json:"status"`
	CreatedAt   string      `db:"created_at" json:"createdAt"`
}

// Valid order statuses, in rough lifecycle order.
var OrderStatuses = []string{"Pending", "Payment Completed", "Processing", "Delivered", "Cancelled"}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Settings struct {
	DeliveryFee         float64 `db:"delivery_fee" json:"deliveryFee"`
	DiscountPercent     float64 `db:"discount_percent" json:"discountPercent"`
	MinOrderForDiscount float64 `db:"min_order_for_discount" json:"minOrderForDiscount"`
}

type Stats struct {
	Products int     `json:"products"`
	Orders   int     `json:"orders"`
	Users    int     `json:"users"`
	Revenue  float64 `json:"revenue"`
}
