package cart

import (
	"testing"

	"github.com/dukapos/dukapos-api/internal/application/pricing"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vat16 = pricing.TaxConfig{Enabled: true, Rate: 16}

func wholesale(v float64) *float64 { return &v }

func testProduct(qty int) *entity.Product {
	return &entity.Product{
		ID:             uuid.New(),
		Name:           "Rice 5kg",
		SKU:            "RIC-001",
		Price:          450,
		WholesalePrice: wholesale(400),
		Quantity:       qty,
	}
}

func lookupOf(products ...*entity.Product) ProductLookup {
	return func(id uuid.UUID) (*entity.Product, error) {
		for _, p := range products {
			if p.ID == id {
				return p, nil
			}
		}
		return nil, apperror.NewNotFoundError("Product")
	}
}

func TestAddLine_MergesSameProduct(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(100)

	_, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)
	c, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.InDelta(t, 450.0, c.Items[0].Price, 1e-6)
}

func TestAddLine_OutOfStock(t *testing.T) {
	m := NewManager()
	userID := uuid.New()

	_, err := m.AddLine(userID, testProduct(0), enum.SaleTypeRetail, vat16)

	assert.True(t, apperror.IsKind(err, apperror.KindOutOfStock))
	assert.True(t, m.Snapshot(userID, enum.SaleTypeRetail).IsEmpty())
}

func TestAddLine_IncrementBeyondStock(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(1)

	_, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)
	_, err = m.AddLine(userID, p, enum.SaleTypeRetail, vat16)

	assert.True(t, apperror.IsKind(err, apperror.KindOutOfStock))
	c := m.Snapshot(userID, enum.SaleTypeRetail)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestAddLine_WholesaleSnapshotsWholesalePrice(t *testing.T) {
	m := NewManager()
	userID := uuid.New()

	c, err := m.AddLine(userID, testProduct(10), enum.SaleTypeWholesale, vat16)
	require.NoError(t, err)

	assert.InDelta(t, 400.0, c.Items[0].Price, 1e-6)
	assert.InDelta(t, 400.0, c.Items[0].OriginalPrice, 1e-6)
}

func TestSetQuantity_StockGuard(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(5)
	c, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)

	_, err = m.SetQuantity(userID, c.Items[0].LineID, 6, lookupOf(p), vat16)

	assert.True(t, apperror.IsKind(err, apperror.KindOutOfStock))
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(5)
	c, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)

	c, err = m.SetQuantity(userID, c.Items[0].LineID, 0, lookupOf(p), vat16)
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())
}

func TestSetQuantity_RecomputesWithLineDiscount(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(10)
	c, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)
	c, err = m.ApplyLineDiscount(userID, c.Items[0].LineID, 10, vat16)
	require.NoError(t, err)

	c, err = m.SetQuantity(userID, c.Items[0].LineID, 4, lookupOf(p), vat16)
	require.NoError(t, err)

	item := c.Items[0]
	assert.InDelta(t, 180.0, item.DiscountAmount, 1e-6)         // 450 * 10% * 4
	assert.InDelta(t, 1620.0*0.16, item.TaxAmount, 1e-6)        // tax on post-discount base
	assert.InDelta(t, 1620.0*1.16, item.Total, 1e-6)
}

func TestOverridePrice_PreservesFirstPreEditPrice(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(10)
	c, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)
	lineID := c.Items[0].LineID

	c, err = m.OverridePrice(userID, lineID, 430, vat16)
	require.NoError(t, err)
	c, err = m.OverridePrice(userID, lineID, 420, vat16)
	require.NoError(t, err)

	item := c.Items[0]
	assert.True(t, item.EditedByAttendant)
	assert.InDelta(t, 420.0, item.Price, 1e-6)
	require.NotNil(t, item.OriginalPriceBeforeEdit)
	assert.InDelta(t, 450.0, *item.OriginalPriceBeforeEdit, 1e-6)
}

func TestOverridePrice_RejectsNonPositive(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	c, err := m.AddLine(userID, testProduct(10), enum.SaleTypeRetail, vat16)
	require.NoError(t, err)

	_, err = m.OverridePrice(userID, c.Items[0].LineID, 0, vat16)

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSwitchSaleType_RepricesButKeepsDiscountFields(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(10)
	c, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)
	c, err = m.ApplyLineDiscount(userID, c.Items[0].LineID, 10, vat16)
	require.NoError(t, err)
	staleDiscount := c.Items[0].DiscountAmount

	c, err = m.SwitchSaleType(userID, enum.SaleTypeWholesale, lookupOf(p), vat16)
	require.NoError(t, err)

	item := c.Items[0]
	assert.Equal(t, enum.SaleTypeWholesale, c.SaleType)
	assert.InDelta(t, 400.0, item.Price, 1e-6)
	assert.InDelta(t, staleDiscount, item.DiscountAmount, 1e-6)
	assert.InDelta(t, 10.0, item.DiscountPercent, 1e-6)
}

func TestSwitchSaleType_FailedLookupLeavesCartUntouched(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p1 := testProduct(10)
	p2 := testProduct(10)
	_, err := m.AddLine(userID, p1, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)
	_, err = m.AddLine(userID, p2, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)

	// p2 is not in the catalog, so the switch must fail
	_, err = m.SwitchSaleType(userID, enum.SaleTypeWholesale, lookupOf(p1), vat16)
	require.Error(t, err)

	c := m.Snapshot(userID, enum.SaleTypeRetail)
	assert.Equal(t, enum.SaleTypeRetail, c.SaleType)
	assert.InDelta(t, 450.0, c.Items[0].Price, 1e-6)
	assert.InDelta(t, 450.0, c.Items[1].Price, 1e-6)
}

func TestApplySaleDiscount_ReplacesExisting(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	discountID := uuid.New()

	m.ApplySaleDiscount(userID, entity.SaleDiscount{Type: enum.DiscountTypeFixed, Value: 50}, nil, enum.SaleTypeRetail)
	c := m.ApplySaleDiscount(userID, entity.SaleDiscount{Type: enum.DiscountTypePercentage, Value: 10}, &discountID, enum.SaleTypeRetail)

	require.NotNil(t, c.SaleDiscount)
	assert.Equal(t, enum.DiscountTypePercentage, c.SaleDiscount.Type)
	require.NotNil(t, c.AppliedDiscountID)
	assert.Equal(t, discountID, *c.AppliedDiscountID)

	c = m.ClearSaleDiscount(userID)
	assert.Nil(t, c.SaleDiscount)
	assert.Nil(t, c.AppliedDiscountID)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	m := NewManager()
	alice, bob := uuid.New(), uuid.New()
	p := testProduct(10)

	_, err := m.AddLine(alice, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)

	assert.True(t, m.Snapshot(bob, enum.SaleTypeRetail).IsEmpty())
	assert.False(t, m.Snapshot(alice, enum.SaleTypeRetail).IsEmpty())
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewManager()
	userID := uuid.New()
	p := testProduct(10)
	_, err := m.AddLine(userID, p, enum.SaleTypeRetail, vat16)
	require.NoError(t, err)

	snap := m.Snapshot(userID, enum.SaleTypeRetail)
	snap.Items[0].Quantity = 99

	assert.Equal(t, 1, m.Snapshot(userID, enum.SaleTypeRetail).Items[0].Quantity)
}
