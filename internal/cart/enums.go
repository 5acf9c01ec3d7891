package cart

import "fmt"

type OrderStatus string

const (
	StatusCompleted OrderStatus = "COMPLETED"
	StatusPaid      OrderStatus = "PAID"
	StatusPending   OrderStatus = "PENDING"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusRefunded  OrderStatus = "REFUNDED"
)

// ParseOrderStatus matches labels exactly, case sensitive.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusCompleted, StatusPaid, StatusPending, StatusCancelled, StatusRefunded:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentIdeal      PaymentMethod = "IDEAL"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCreditCard, PaymentIdeal:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}
