package enum

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusHeld      SaleStatus = "held"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known states
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusHeld, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}
