package api

import (
	"time"

	"github.com/nourshop/storefront/pkg/credential"
)

// Product is a catalog product as served by the backend.
type Product struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"imageUrl"`
	Price        float64 `json:"price"`
	CategoryName string  `json:"categoryName"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"imageUrl"`
	Price        float64 `json:"price"`
	CategoryName string  `json:"categoryName"`
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderCompleted OrderStatus = "Completed"
)

// PaymentMethod is how the shopper chose to pay.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCreditCard     PaymentMethod = "credit_card"
)

// Valid reports whether the payment method is one the backend accepts.
func (p PaymentMethod) Valid() bool {
	return p == PaymentCashOnDelivery || p == PaymentCreditCard
}

// CustomerDetails is the contact information attached to an order.
type CustomerDetails struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderLine is one product line inside a submitted order. The wire shape
// mirrors the cart line the client sends on placement.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a placed order as served by the backend.
type Order struct {
	ID              string          `json:"_id"`
	Items           []OrderLine     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CartLinePayload is one cart line in an order placement request, in the
// shape the backend expects from the storefront.
type CartLinePayload struct {
	ProductID string  `json:"_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// CreateOrderRequest is the order placement payload. ClientReference is a
// client-generated idempotency handle so a retried submission cannot create
// a duplicate order.
type CreateOrderRequest struct {
	CustomerDetails CustomerDetails   `json:"customerDetails"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod"`
	Cart            []CartLinePayload `json:"cart"`
	ClientReference string            `json:"clientReference,omitempty"`
}

// User is an account as served by the backend's admin endpoints.
type User struct {
	ID        string          `json:"_id"`
	Email     string          `json:"email"`
	Role      credential.Role `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}
