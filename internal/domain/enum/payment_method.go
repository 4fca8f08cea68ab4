package enum

// PaymentMethod represents how a sale was paid for
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodMpesa PaymentMethod = "mpesa"
	PaymentMethodCard  PaymentMethod = "card"
	// PaymentMethodMixed marks a sale settled through split payments
	PaymentMethodMixed PaymentMethod = "mixed"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether the method is accepted at checkout.
// Mixed is assigned by the checkout flow, never submitted directly.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMpesa, PaymentMethodCard:
		return true
	}
	return false
}
