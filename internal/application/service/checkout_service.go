package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dukapos/dukapos-api/internal/application/cart"
	"github.com/dukapos/dukapos-api/internal/application/pricing"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/google/uuid"
)

// Split settlements accept at most this many tender entries
const maxSplitEntries = 3

// Tolerance when matching split payment totals against the sale total
const splitTolerance = 0.01

// CheckoutService owns the cart lifecycle: building lines, holding,
// resuming and settling sales. It is the only writer of finalized sale
// records and the only trigger of stock decrements.
type CheckoutService struct {
	carts        *cart.Manager
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	discountRepo repository.DiscountRepository
	settingsRepo repository.SettingsRepository
	auditRepo    repository.AuditRepository

	// deleteOnResume controls whether resuming a held sale removes the
	// held record or leaves it for later cleanup.
	deleteOnResume bool
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts *cart.Manager,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	discountRepo repository.DiscountRepository,
	settingsRepo repository.SettingsRepository,
	auditRepo repository.AuditRepository,
	deleteOnResume bool,
) *CheckoutService {
	return &CheckoutService{
		carts:          carts,
		saleRepo:       saleRepo,
		productRepo:    productRepo,
		discountRepo:   discountRepo,
		settingsRepo:   settingsRepo,
		auditRepo:      auditRepo,
		deleteOnResume: deleteOnResume,
	}
}

// CartView is a cart snapshot together with its computed totals
type CartView struct {
	*cart.Cart
	Totals pricing.Totals `json:"totals"`
}

// PaymentInput carries the chosen method and its method-specific fields
type PaymentInput struct {
	Method       enum.PaymentMethod
	CashReceived float64
	MpesaPhone   string
}

// PaymentResult reports the outcome of a pay attempt. Completed is
// false for methods that cannot settle at the till (mpesa, card); the
// cart is left intact in that case.
type PaymentResult struct {
	Completed    bool         `json:"completed"`
	Message      string       `json:"message,omitempty"`
	Sale         *entity.Sale `json:"sale,omitempty"`
	ChangeAmount float64      `json:"change_amount"`
}

func (s *CheckoutService) storeConfig(ctx context.Context) (*entity.AppSettings, pricing.TaxConfig, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, pricing.TaxConfig{}, err
	}
	return settings, pricing.TaxConfig{Enabled: settings.TaxEnabled, Rate: settings.TaxRate}, nil
}

func (s *CheckoutService) view(c *cart.Cart, tax pricing.TaxConfig) *CartView {
	return &CartView{
		Cart:   c,
		Totals: pricing.ComputeTotals(c.Items, c.SaleDiscount, tax),
	}
}

// GetCart returns the user's cart with computed totals
func (s *CheckoutService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(s.carts.Snapshot(userID, settings.DefaultSaleType), tax), nil
}

// AddProduct adds one unit of the product to the user's cart
func (s *CheckoutService) AddProduct(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.Active {
		return nil, apperror.NewBadRequestError("Product is not available for sale")
	}

	c, err := s.carts.AddLine(userID, product, settings.DefaultSaleType, tax)
	if err != nil {
		return nil, err
	}
	return s.view(c, tax), nil
}

// AddProductQuantity adds several units of a product in one call. The
// whole quantity is checked against stock up front so a rejected request
// leaves the cart unchanged.
func (s *CheckoutService) AddProductQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 1 {
		quantity = 1
	}
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.Active {
		return nil, apperror.NewBadRequestError("Product is not available for sale")
	}

	inCart := 0
	for _, item := range s.carts.Snapshot(userID, settings.DefaultSaleType).Items {
		if item.ProductID == productID {
			inCart = item.Quantity
			break
		}
	}
	if inCart+quantity > product.Quantity {
		return nil, apperror.NewOutOfStockError(product.Name, product.Quantity)
	}

	var c *cart.Cart
	for i := 0; i < quantity; i++ {
		c, err = s.carts.AddLine(userID, product, settings.DefaultSaleType, tax)
		if err != nil {
			return nil, err
		}
	}
	return s.view(c, tax), nil
}

// SetQuantity updates a cart line's quantity, removing it at zero
func (s *CheckoutService) SetQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*CartView, error) {
	_, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.SetQuantity(userID, lineID, quantity, s.lookup(ctx), tax)
	if err != nil {
		return nil, err
	}
	return s.view(c, tax), nil
}

// RemoveLine removes a cart line unconditionally
func (s *CheckoutService) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) (*CartView, error) {
	_, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.RemoveLine(userID, lineID)
	if err != nil {
		return nil, err
	}
	return s.view(c, tax), nil
}

// OverridePrice sets a manual unit price on a line and records the
// override in the audit log. The edit_prices permission is enforced by
// the HTTP layer before this is reached.
func (s *CheckoutService) OverridePrice(ctx context.Context, user *entity.User, lineID uuid.UUID, newPrice float64) (*CartView, error) {
	_, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.OverridePrice(user.ID, lineID, newPrice, tax)
	if err != nil {
		return nil, err
	}

	if s.auditRepo != nil {
		_ = s.auditRepo.Create(ctx, &entity.AuditLog{
			UserID:     user.ID,
			Action:     entity.AuditActionPriceOverride,
			EntityType: "cart_line",
			EntityID:   lineID.String(),
			Detail:     fmt.Sprintf("price overridden to %.2f by %s", newPrice, user.Username),
		})
	}
	return s.view(c, tax), nil
}

// ApplyLineDiscount sets a percent discount on a single line
func (s *CheckoutService) ApplyLineDiscount(ctx context.Context, userID, lineID uuid.UUID, percent float64) (*CartView, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return nil, apperror.NewBadRequestError("discount percent must be a finite number")
	}
	_, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.ApplyLineDiscount(userID, lineID, percent, tax)
	if err != nil {
		return nil, err
	}
	return s.view(c, tax), nil
}

// SwitchSaleType re-prices the whole cart for retail or wholesale
func (s *CheckoutService) SwitchSaleType(ctx context.Context, userID uuid.UUID, saleType enum.SaleType) (*CartView, error) {
	if !saleType.Valid() {
		return nil, apperror.NewBadRequestError("invalid sale type")
	}
	_, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.SwitchSaleType(userID, saleType, s.lookup(ctx), tax)
	if err != nil {
		return nil, err
	}
	return s.view(c, tax), nil
}

// ApplyAdHocDiscount applies a manually entered sale-wide discount.
// The value must be a finite number greater than zero; no upper bound
// is enforced on percentages.
func (s *CheckoutService) ApplyAdHocDiscount(ctx context.Context, userID uuid.UUID, discountType enum.DiscountType, value float64) (*CartView, error) {
	if !discountType.Valid() {
		return nil, apperror.NewBadRequestError("invalid discount type")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return nil, apperror.NewBadRequestError("discount value must be a number greater than zero")
	}
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c := s.carts.ApplySaleDiscount(userID, entity.SaleDiscount{Type: discountType, Value: value}, nil, settings.DefaultSaleType)
	return s.view(c, tax), nil
}

// ApplyPresetDiscount applies a catalog discount to the cart. Only
// active, date-valid discounts are accepted.
func (s *CheckoutService) ApplyPresetDiscount(ctx context.Context, userID, discountID uuid.UUID) (*CartView, error) {
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	discount, err := s.discountRepo.GetByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	if !discount.IsCurrent(time.Now()) {
		return nil, apperror.NewBadRequestError("discount is not currently active")
	}

	c := s.carts.ApplySaleDiscount(userID, entity.SaleDiscount{
		Type:  discount.Type,
		Value: discount.Value,
		Name:  discount.Name,
	}, &discount.ID, settings.DefaultSaleType)
	return s.view(c, tax), nil
}

// ClearDiscount removes the sale-wide discount from the cart
func (s *CheckoutService) ClearDiscount(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	_, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(s.carts.ClearSaleDiscount(userID), tax), nil
}

// ClearCart empties the user's cart
func (s *CheckoutService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	s.carts.Clear(userID)
	return nil
}

// HoldSale snapshots the current cart into a held sale and clears the
// cart. Stock is not touched.
func (s *CheckoutService) HoldSale(ctx context.Context, user *entity.User) (*entity.Sale, error) {
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c := s.carts.Snapshot(user.ID, settings.DefaultSaleType)
	if c.IsEmpty() {
		return nil, apperror.NewBadRequestError("cannot hold an empty cart")
	}

	now := time.Now()
	sale := s.buildSale(user, c, pricing.ComputeTotals(c.Items, c.SaleDiscount, tax))
	sale.Status = enum.SaleStatusHeld
	sale.HeldAt = &now
	sale.ReceiptNumber = utils.GenerateReceiptNumber("HLD")

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	s.carts.Clear(user.ID)

	if s.auditRepo != nil {
		_ = s.auditRepo.Create(ctx, &entity.AuditLog{
			UserID:     user.ID,
			Action:     entity.AuditActionSaleHeld,
			EntityType: "sale",
			EntityID:   sale.ID.String(),
			Detail:     fmt.Sprintf("sale held with %d items totalling %.2f", len(sale.Items), sale.Total),
		})
	}
	return sale, nil
}

// ListHeldSales returns all currently held sales
func (s *CheckoutService) ListHeldSales(ctx context.Context) ([]entity.Sale, error) {
	return s.saleRepo.ListHeld(ctx)
}

// ResumeSale loads a held sale's frozen lines back into the user's
// cart, replacing its contents. Whether the held record is deleted is
// a deployment policy, not hardcoded.
func (s *CheckoutService) ResumeSale(ctx context.Context, userID, saleID uuid.UUID) (*CartView, error) {
	_, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Held sale")
	}
	if sale.Status != enum.SaleStatusHeld {
		return nil, apperror.NewBadRequestError("only held sales can be resumed")
	}

	c := s.carts.Replace(userID, sale.Items, sale.SaleType, sale.SaleDiscount)

	if s.deleteOnResume {
		if err := s.saleRepo.Delete(ctx, saleID); err != nil {
			return nil, err
		}
	}
	return s.view(c, tax), nil
}

// Pay settles the cart with a single payment method. Only cash can
// complete a sale at the till; mpesa and card return informational
// results with the cart left intact.
func (s *CheckoutService) Pay(ctx context.Context, user *entity.User, input *PaymentInput) (*PaymentResult, error) {
	if !input.Method.Valid() {
		return nil, apperror.NewBadRequestError("invalid payment method")
	}
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	c := s.carts.Snapshot(user.ID, settings.DefaultSaleType)
	if c.IsEmpty() {
		return nil, apperror.NewBadRequestError("cart is empty")
	}
	totals := pricing.ComputeTotals(c.Items, c.SaleDiscount, tax)

	switch input.Method {
	case enum.PaymentMethodCash:
		if input.CashReceived < totals.Total {
			return nil, apperror.NewInsufficientPaymentError(totals.Total, input.CashReceived)
		}
		change := input.CashReceived - totals.Total
		sale, err := s.finalize(ctx, user, c, totals, func(sale *entity.Sale) {
			sale.PaymentMethod = enum.PaymentMethodCash
			sale.CashReceived = input.CashReceived
			sale.ChangeAmount = change
		})
		if err != nil {
			return nil, err
		}
		return &PaymentResult{Completed: true, Sale: sale, ChangeAmount: change}, nil

	case enum.PaymentMethodMpesa:
		if len(input.MpesaPhone) < 10 {
			return nil, apperror.NewBadRequestError("a valid M-Pesa phone number is required")
		}
		return &PaymentResult{
			Completed: false,
			Message:   "M-Pesa payment is not available at checkout; use the settings payment test flow",
		}, nil

	case enum.PaymentMethodCard:
		return &PaymentResult{
			Completed: false,
			Message:   "Card payment requires terminal integration",
		}, nil
	}

	return nil, apperror.NewBadRequestError("invalid payment method")
}

// PaySplit settles the cart across up to three tender entries whose
// amounts must sum to the sale total within a one-cent tolerance.
func (s *CheckoutService) PaySplit(ctx context.Context, user *entity.User, payments []entity.SplitPayment) (*PaymentResult, error) {
	settings, tax, err := s.storeConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.AllowSplitPayments {
		return nil, apperror.NewBadRequestError("split payments are disabled in store settings")
	}
	if len(payments) == 0 {
		return nil, apperror.NewBadRequestError("at least one payment entry is required")
	}
	if len(payments) > maxSplitEntries {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("at most %d split payments are allowed", maxSplitEntries))
	}

	var paid float64
	for _, p := range payments {
		if !p.Method.Valid() {
			return nil, apperror.NewBadRequestError("invalid payment method in split entry")
		}
		if p.Amount <= 0 {
			return nil, apperror.NewBadRequestError("split payment amounts must be greater than zero")
		}
		paid += p.Amount
	}

	c := s.carts.Snapshot(user.ID, settings.DefaultSaleType)
	if c.IsEmpty() {
		return nil, apperror.NewBadRequestError("cart is empty")
	}
	totals := pricing.ComputeTotals(c.Items, c.SaleDiscount, tax)

	if math.Abs(paid-totals.Total) > splitTolerance {
		return nil, apperror.NewPaymentMismatchError(totals.Total, paid)
	}

	// Each settled entry gets its own id so receipts and refunds can
	// reference individual tenders
	for i := range payments {
		if payments[i].ID == uuid.Nil {
			payments[i].ID = uuid.New()
		}
	}

	sale, err := s.finalize(ctx, user, c, totals, func(sale *entity.Sale) {
		sale.PaymentMethod = enum.PaymentMethodMixed
		sale.SplitPayments = payments
	})
	if err != nil {
		return nil, err
	}
	return &PaymentResult{Completed: true, Sale: sale}, nil
}

// CancelSale voids a completed sale and restores its stock
func (s *CheckoutService) CancelSale(ctx context.Context, user *entity.User, saleID uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return apperror.NewBadRequestError("Sale is already cancelled")
	}

	// Held sales never decremented stock, so there is nothing to restore
	if sale.Status == enum.SaleStatusCompleted {
		increments := make(map[uuid.UUID]int)
		for _, item := range sale.Items {
			increments[item.ProductID] += item.Quantity
		}
		if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			return err
		}
	}

	now := time.Now()
	sale.Status = enum.SaleStatusCancelled
	sale.CancelledAt = &now
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return err
	}

	if s.auditRepo != nil {
		_ = s.auditRepo.Create(ctx, &entity.AuditLog{
			UserID:     user.ID,
			Action:     entity.AuditActionSaleCancelled,
			EntityType: "sale",
			EntityID:   sale.ID.String(),
			Detail:     fmt.Sprintf("sale %s cancelled by %s", sale.ReceiptNumber, user.Username),
		})
	}
	return nil
}

// finalize settles a sale: it decrements stock for every line, writes
// the sale record, then clears the cart. Nothing is persisted until all
// validations have passed; on a failed sale write the decrements are
// restored and the cart preserved so the user can retry.
func (s *CheckoutService) finalize(ctx context.Context, user *entity.User, c *cart.Cart, totals pricing.Totals, configure func(*entity.Sale)) (*entity.Sale, error) {
	decrements := make(map[uuid.UUID]int)
	for _, item := range c.Items {
		decrements[item.ProductID] += item.Quantity
	}

	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if len(failedIDs) > 0 {
		names := s.productNames(ctx, failedIDs)
		return nil, apperror.NewAppError(409, fmt.Sprintf("Insufficient stock for: %v", names))
	}

	now := time.Now()
	sale := s.buildSale(user, c, totals)
	sale.Status = enum.SaleStatusCompleted
	sale.CompletedAt = &now
	sale.ReceiptNumber = utils.GenerateReceiptNumber("RCP")
	configure(sale)

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented - restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, apperror.NewPersistenceError(err)
	}

	s.carts.Clear(user.ID)
	return sale, nil
}

func (s *CheckoutService) buildSale(user *entity.User, c *cart.Cart, totals pricing.Totals) *entity.Sale {
	sale := &entity.Sale{
		UserID:        user.ID,
		AttendantName: user.FullName,
		SaleType:      c.SaleType,
		Items:         append([]entity.SaleItem(nil), c.Items...),
		Subtotal:      totals.Subtotal,
		ItemDiscounts: totals.ItemDiscounts,
		SaleDiscount:  c.SaleDiscount,
		TotalDiscount: totals.TotalDiscount,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
	}
	if c.SaleDiscount != nil {
		sale.DiscountPercent = c.SaleDiscount.Value
	}
	return sale
}

func (s *CheckoutService) lookup(ctx context.Context) cart.ProductLookup {
	return func(productID uuid.UUID) (*entity.Product, error) {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		return product, nil
	}
}

func (s *CheckoutService) productNames(ctx context.Context, ids []uuid.UUID) []string {
	names := make([]string, 0, len(ids))
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		for _, id := range ids {
			names = append(names, id.String())
		}
		return names
	}
	for i := range products {
		names = append(names, products[i].Name)
	}
	return names
}
