package domain

const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// OrderStatuses lists every status an admin may set.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

type ShippingAddress struct {
	CustomerName  string `json:"customerName" db:"customer_name"`
	CustomerEmail string `json:"customerEmail" db:"customer_email"`
	Street        string `json:"street" db:"street"`
	City          string `json:"city" db:"city"`
	State         string `json:"state" db:"state"`
	Zip           string `json:"zip" db:"zip"`
	Country       string `json:"country" db:"country"`
}

type OrderItem struct {
	ProductID string  `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	ImageURL  string  `json:"imageUrl,omitempty" db:"image_url"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

type Order struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"userId" db:"user_id"`
	TotalAmount     float64         `json:"totalAmount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	TransactionID   string          `json:"transactionId" db:"transaction_id"`
	CreatedAt       string          `json:"createdAt" db:"created_at"`
	ShippingAddress ShippingAddress `json:"shippingAddress" db:"-"`
	Items           []OrderItem     `json:"items,omitempty" db:"-"`
}
