package enum

// DiscountScope declares whether a discount targets a single line or the whole sale
type DiscountScope string

const (
	DiscountScopeItem DiscountScope = "item"
	DiscountScopeSale DiscountScope = "sale"
)

func (s DiscountScope) String() string {
	return string(s)
}

func (s DiscountScope) Valid() bool {
	return s == DiscountScopeItem || s == DiscountScopeSale
}
