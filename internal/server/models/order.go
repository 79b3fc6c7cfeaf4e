package models

import "time"

// Order lifecycle. Transitions are performed by back-office tooling; the
// storefront API only ever assigns StatusPending at creation.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusProcessed = "processed"
	StatusShipping  = "shipping"
	StatusDelivered = "delivered"
)

// OrderItem is one purchased position.
type OrderItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
}

// CustomerInfo is the delivery contact captured at checkout.
type CustomerInfo struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Order is a confirmed order. ID, CreatedAt and the initial Status are
// assigned by the server at creation.
type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Items         []OrderItem  `json:"items"`
	Total         float64      `json:"total"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	PaymentMethod string       `json:"paymentMethod"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// OrderDraft is the client-submitted checkout payload.
type OrderDraft struct {
	UserID        string       `json:"userId"`
	Items         []OrderItem  `json:"items"`
	Total         float64      `json:"total"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	PaymentMethod string       `json:"paymentMethod"`
}
