package service

import (
	"context"
	"testing"

	"github.com/dukapos/dukapos-api/internal/application/cart"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-6

type checkoutFixture struct {
	svc      *CheckoutService
	products *fakeProductRepo
	sales    *fakeSaleRepo
	audit    *fakeAuditRepo
	user     *entity.User
}

func newCheckoutFixture(deleteOnResume bool, products ...*entity.Product) *checkoutFixture {
	sales := newFakeSaleRepo()
	productRepo := newFakeProductRepo(products...)
	audit := &fakeAuditRepo{}
	svc := NewCheckoutService(
		cart.NewManager(),
		sales,
		productRepo,
		newFakeDiscountRepo(),
		newFakeSettingsRepo(),
		audit,
		deleteOnResume,
	)
	return &checkoutFixture{
		svc:      svc,
		products: productRepo,
		sales:    sales,
		audit:    audit,
		user: &entity.User{
			ID:       uuid.New(),
			Username: "attendant",
			FullName: "Jane Attendant",
			Role:     enum.UserRoleAttendant,
		},
	}
}

func riceProduct(qty int) *entity.Product {
	wholesale := 400.0
	return &entity.Product{
		ID:             uuid.New(),
		Name:           "Rice 5kg",
		SKU:            "RIC-001",
		Price:          450,
		WholesalePrice: &wholesale,
		Quantity:       qty,
		Active:         true,
	}
}

func TestPayCash_CompletesSaleAndDecrementsStock(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)

	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	res, err := f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodCash, CashReceived: 1100})
	require.NoError(t, err)

	require.True(t, res.Completed)
	require.NotNil(t, res.Sale)
	assert.Equal(t, enum.SaleStatusCompleted, res.Sale.Status)
	assert.InDelta(t, 1044.0, res.Sale.Total, epsilon)
	assert.InDelta(t, 56.0, res.ChangeAmount, epsilon)
	assert.Contains(t, res.Sale.ReceiptNumber, "RCP-")
	assert.Equal(t, 98, f.products.quantity(p.ID))

	view, err := f.svc.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, view.IsEmpty())
}

func TestPayCash_InsufficientLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)

	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodCash, CashReceived: 1000})

	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientPayment))
	assert.Equal(t, 0, f.sales.count())
	assert.Equal(t, 100, f.products.quantity(p.ID))

	view, getErr := f.svc.GetCart(ctx, f.user.ID)
	require.NoError(t, getErr)
	assert.False(t, view.IsEmpty())
}

func TestPayMpesa_InformationalNoOp(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(10)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	res, err := f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodMpesa, MpesaPhone: "0712345678"})
	require.NoError(t, err)

	assert.False(t, res.Completed)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, 0, f.sales.count())
	assert.Equal(t, 10, f.products.quantity(p.ID))
}

func TestPayMpesa_RejectsShortPhone(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(10)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodMpesa, MpesaPhone: "07123"})

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPayCard_InformationalOnly(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(10)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	res, err := f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodCard})
	require.NoError(t, err)

	assert.False(t, res.Completed)
	assert.Equal(t, 0, f.sales.count())
}

func TestPaySplit_ExactSumSettles(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	res, err := f.svc.PaySplit(ctx, f.user, []entity.SplitPayment{
		{Method: enum.PaymentMethodCash, Amount: 544},
		{Method: enum.PaymentMethodMpesa, Amount: 500},
	})
	require.NoError(t, err)

	require.True(t, res.Completed)
	assert.Equal(t, enum.PaymentMethodMixed, res.Sale.PaymentMethod)
	require.Len(t, res.Sale.SplitPayments, 2)
	assert.Equal(t, 98, f.products.quantity(p.ID))
}

func TestPaySplit_MismatchRejected(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	// total is 1044; 1000 leaves 44 outstanding, beyond the 0.01 tolerance
	_, err = f.svc.PaySplit(ctx, f.user, []entity.SplitPayment{
		{Method: enum.PaymentMethodCash, Amount: 500},
		{Method: enum.PaymentMethodMpesa, Amount: 500},
	})

	assert.True(t, apperror.IsKind(err, apperror.KindPaymentMismatch))
	assert.Equal(t, 0, f.sales.count())
	assert.Equal(t, 100, f.products.quantity(p.ID))
}

func TestPaySplit_WithinToleranceSettles(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	res, err := f.svc.PaySplit(ctx, f.user, []entity.SplitPayment{
		{Method: enum.PaymentMethodCash, Amount: 1044.009},
	})
	require.NoError(t, err)
	assert.True(t, res.Completed)
}

func TestPaySplit_EntriesGetIDsAndKeepTenderDetails(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	phone := "254712345678"
	ref := "AUTH-4711"
	res, err := f.svc.PaySplit(ctx, f.user, []entity.SplitPayment{
		{Method: enum.PaymentMethodCash, Amount: 544},
		{Method: enum.PaymentMethodMpesa, Amount: 300, MpesaPhoneNumber: &phone},
		{Method: enum.PaymentMethodCard, Amount: 200, CardReference: &ref},
	})
	require.NoError(t, err)

	require.Len(t, res.Sale.SplitPayments, 3)
	seen := make(map[uuid.UUID]bool)
	for _, entry := range res.Sale.SplitPayments {
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.False(t, seen[entry.ID])
		seen[entry.ID] = true
	}
	require.NotNil(t, res.Sale.SplitPayments[1].MpesaPhoneNumber)
	assert.Equal(t, phone, *res.Sale.SplitPayments[1].MpesaPhoneNumber)
	require.NotNil(t, res.Sale.SplitPayments[2].CardReference)
	assert.Equal(t, ref, *res.Sale.SplitPayments[2].CardReference)
}

func TestPayCash_RecordsSaleDiscountPercent(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.ApplyAdHocDiscount(ctx, f.user.ID, enum.DiscountTypePercentage, 10)
	require.NoError(t, err)

	res, err := f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodCash, CashReceived: 1000})
	require.NoError(t, err)

	assert.InDelta(t, 10.0, res.Sale.DiscountPercent, epsilon)
}

func TestPaySplit_TooManyEntries(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	_, err = f.svc.PaySplit(ctx, f.user, []entity.SplitPayment{
		{Method: enum.PaymentMethodCash, Amount: 100},
		{Method: enum.PaymentMethodCash, Amount: 100},
		{Method: enum.PaymentMethodCash, Amount: 100},
		{Method: enum.PaymentMethodCash, Amount: 222},
	})

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestHoldAndResume_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	before, err := f.svc.GetCart(ctx, f.user.ID)
	require.NoError(t, err)

	held, err := f.svc.HoldSale(ctx, f.user)
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusHeld, held.Status)
	assert.Contains(t, held.ReceiptNumber, "HLD-")
	assert.Equal(t, 100, f.products.quantity(p.ID)) // hold never touches stock

	mid, err := f.svc.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, mid.IsEmpty())

	after, err := f.svc.ResumeSale(ctx, f.user.ID, held.ID)
	require.NoError(t, err)

	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Totals, after.Totals)
}

func TestResume_KeepsHeldRecordByDefault(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	held, err := f.svc.HoldSale(ctx, f.user)
	require.NoError(t, err)

	_, err = f.svc.ResumeSale(ctx, f.user.ID, held.ID)
	require.NoError(t, err)

	still, err := f.sales.GetByID(ctx, held.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestResume_DeleteOnResumePolicy(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(true, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	held, err := f.svc.HoldSale(ctx, f.user)
	require.NoError(t, err)

	_, err = f.svc.ResumeSale(ctx, f.user.ID, held.ID)
	require.NoError(t, err)

	gone, err := f.sales.GetByID(ctx, held.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestHold_EmptyCartRejected(t *testing.T) {
	f := newCheckoutFixture(false)

	_, err := f.svc.HoldSale(context.Background(), f.user)

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResume_CompletedSaleRejected(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	res, err := f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodCash, CashReceived: 600})
	require.NoError(t, err)

	_, err = f.svc.ResumeSale(ctx, f.user.ID, res.Sale.ID)

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestFinalize_SaleWriteFailureRestoresStockAndCart(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	f.sales.failWrite = true

	_, err = f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodCash, CashReceived: 600})

	assert.True(t, apperror.IsKind(err, apperror.KindPersistenceFailure))
	assert.Equal(t, 100, f.products.quantity(p.ID))

	view, getErr := f.svc.GetCart(ctx, f.user.ID)
	require.NoError(t, getErr)
	assert.False(t, view.IsEmpty())
}

func TestApplyAdHocDiscount_ScenarioTotals(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	view, err := f.svc.ApplyAdHocDiscount(ctx, f.user.ID, enum.DiscountTypePercentage, 10)
	require.NoError(t, err)

	assert.InDelta(t, 90.0, view.Totals.SaleDiscountAmount, epsilon)
	assert.InDelta(t, 810.0, view.Totals.TaxableAmount, epsilon)
	assert.InDelta(t, 129.6, view.Totals.TaxAmount, epsilon)
	assert.InDelta(t, 939.6, view.Totals.Total, epsilon)
}

func TestApplyAdHocDiscount_RejectsNonPositive(t *testing.T) {
	f := newCheckoutFixture(false)

	_, err := f.svc.ApplyAdHocDiscount(context.Background(), f.user.ID, enum.DiscountTypePercentage, 0)

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestOverridePrice_WritesAuditEntry(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	view, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)

	_, err = f.svc.OverridePrice(ctx, f.user, view.Items[0].LineID, 430)
	require.NoError(t, err)

	entries, _, err := f.audit.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditActionPriceOverride, entries[0].Action)
}

func TestCancelSale_RestoresStockOnce(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)
	require.NoError(t, err)
	res, err := f.svc.Pay(ctx, f.user, &PaymentInput{Method: enum.PaymentMethodCash, CashReceived: 600})
	require.NoError(t, err)
	require.Equal(t, 99, f.products.quantity(p.ID))

	require.NoError(t, f.svc.CancelSale(ctx, f.user, res.Sale.ID))
	assert.Equal(t, 100, f.products.quantity(p.ID))

	err = f.svc.CancelSale(ctx, f.user, res.Sale.ID)
	assert.Error(t, err)
	assert.Equal(t, 100, f.products.quantity(p.ID))
}

func TestAddProduct_InactiveRejected(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(100)
	p.Active = false
	f := newCheckoutFixture(false, p)

	_, err := f.svc.AddProduct(ctx, f.user.ID, p.ID)

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestAddProductQuantity_AddsAllUnitsAtOnce(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(10)
	f := newCheckoutFixture(false, p)

	view, err := f.svc.AddProductQuantity(ctx, f.user.ID, p.ID, 4)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)
}

func TestAddProductQuantity_RejectsWholeRequestBeyondStock(t *testing.T) {
	ctx := context.Background()
	p := riceProduct(5)
	f := newCheckoutFixture(false, p)
	_, err := f.svc.AddProductQuantity(ctx, f.user.ID, p.ID, 3)
	require.NoError(t, err)

	// 3 in the cart plus 4 more would exceed the 5 on hand; nothing
	// may be applied from the failed request
	_, err = f.svc.AddProductQuantity(ctx, f.user.ID, p.ID, 4)
	assert.True(t, apperror.IsKind(err, apperror.KindOutOfStock))

	view, err := f.svc.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
}
