package enum

// SaleType selects which catalog price a cart line snapshots
type SaleType string

const (
	SaleTypeRetail    SaleType = "retail"
	SaleTypeWholesale SaleType = "wholesale"
)

func (t SaleType) String() string {
	return string(t)
}

func (t SaleType) Valid() bool {
	return t == SaleTypeRetail || t == SaleTypeWholesale
}
