package models

// Order statuses as assigned by the server. The client never moves an order
// between statuses; updates arrive only via a fresh fetch.
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusProcessed = "processed"
	OrderStatusShipping  = "shipping"
	OrderStatusDelivered = "delivered"
)

// CustomerInfo is the delivery contact captured at checkout.
type CustomerInfo struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// OrderDraft is what the client submits at checkout. ID, CreatedAt and Status
// are assigned by the server.
type OrderDraft struct {
	UserID        string       `json:"userId"`
	Items         []Item       `json:"items"`
	Total         float64      `json:"total"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	PaymentMethod string       `json:"paymentMethod"`
}

// Order is a confirmed order as stored on the server. Immutable once created
// except for Status, which only the server advances.
type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Items         []Item       `json:"items"`
	Total         float64      `json:"total"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	PaymentMethod string       `json:"paymentMethod"`
	Status        string       `json:"status"`
	CreatedAt     string       `json:"createdAt"`
}
