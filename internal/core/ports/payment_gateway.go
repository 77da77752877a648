package ports

import "context"

// OrderCustomer identifies the paying user towards the gateway.
type OrderCustomer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// CreateOrderInput carries everything needed to open a gateway order.
type CreateOrderInput struct {
	BookingID string
	Amount    float64
	Currency  string
	Customer  OrderCustomer
}

// OrderSession is the gateway's handle for a freshly created order.
type OrderSession struct {
	OrderID          string
	PaymentSessionID string
	PaymentURL       string
}

// OrderStatus is the normalized projection of a gateway order. Paid is the
// only field callers may act on; RawStatus is kept for logging.
type OrderStatus struct {
	Paid      bool
	RawStatus string
}

// WebhookEvent is the normalized form of an asynchronous gateway
// notification. Success and Failed are mutually exclusive; when both are
// false the order is still pending. BookingID is best-effort; the order id
// remains the authoritative join key.
type WebhookEvent struct {
	OrderID   string
	BookingID string
	Success   bool
	Failed    bool
}

// PaymentGateway is the boundary adapter around the external payment
// provider. All provider-specific payload shapes stay behind this interface;
// only the three-value outcome set {paid, failed, pending} crosses it.
//
// CreateOrder failures must surface as domain.ErrGateway so the caller can
// roll back the booking. Verify failures must never be turned into booking
// mutations by the caller.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderSession, error)
	Verify(ctx context.Context, orderID string) (*OrderStatus, error)
	InterpretWebhook(payload []byte) (*WebhookEvent, error)
}
