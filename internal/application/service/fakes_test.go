package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/pagination"
	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListWithCursor(_ context.Context, params *repository.ProductCursorFilterParams) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	params.Cursor.Validate()

	all := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(all))
	for _, p := range all {
		if cursor != nil {
			after := p.CreatedAt.After(cursor.CreatedAt) ||
				(p.CreatedAt.Equal(cursor.CreatedAt) && p.ID.String() > cursor.ID)
			if !after {
				continue
			}
		}
		out = append(out, p)
		if len(out) == params.Cursor.Limit+1 {
			break
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failed []uuid.UUID
	for id, n := range decrements {
		p, ok := r.products[id]
		if !ok || p.Quantity < n {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, n := range decrements {
		r.products[id].Quantity -= n
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range increments {
		if p, ok := r.products[id]; ok {
			p.Quantity += n
		}
	}
	return nil
}

func (r *fakeProductRepo) quantity(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return p.Quantity
	}
	return -1
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     map[uuid.UUID]*entity.Sale
	failWrite bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errors.New("write rejected")
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetByReceiptNumber(_ context.Context, receipt string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ReceiptNumber == receipt {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListHeld(_ context.Context) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.sales {
		if s.Status == enum.SaleStatusHeld {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sales[id]; ok {
		s.Status = status
	}
	return nil
}

func (r *fakeSaleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sales)
}

type fakeDiscountRepo struct {
	discounts map[uuid.UUID]*entity.Discount
	order     []uuid.UUID
}

func newFakeDiscountRepo(discounts ...*entity.Discount) *fakeDiscountRepo {
	r := &fakeDiscountRepo{discounts: make(map[uuid.UUID]*entity.Discount)}
	for _, d := range discounts {
		r.discounts[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

func (r *fakeDiscountRepo) Create(_ context.Context, d *entity.Discount) error {
	r.discounts[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

func (r *fakeDiscountRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Discount, error) {
	d, ok := r.discounts[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}

func (r *fakeDiscountRepo) Update(_ context.Context, d *entity.Discount) error {
	r.discounts[d.ID] = d
	return nil
}

func (r *fakeDiscountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.discounts, id)
	return nil
}

func (r *fakeDiscountRepo) List(_ context.Context) ([]entity.Discount, error) {
	out := make([]entity.Discount, 0, len(r.order))
	for _, id := range r.order {
		if d, ok := r.discounts[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDiscountRepo) ListActive(_ context.Context, now time.Time) ([]entity.Discount, error) {
	var out []entity.Discount
	for _, id := range r.order {
		if d, ok := r.discounts[id]; ok && d.IsCurrent(now) {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings *entity.AppSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: &entity.AppSettings{
		ID:                 1,
		BusinessName:       "DukaPOS",
		CurrencyCode:       "KES",
		CurrencySymbol:     "KSh",
		TaxEnabled:         true,
		TaxRate:            16,
		TaxName:            "VAT",
		DefaultSaleType:    enum.SaleTypeRetail,
		AllowSplitPayments: true,
	}}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*entity.AppSettings, error) {
	cp := *r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *entity.AppSettings) error {
	r.settings = s
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []entity.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, e *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _ *repository.AuditFilterParams) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.AuditLog(nil), r.entries...), int64(len(r.entries)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

type fakeMpesaRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*entity.MpesaTransaction
}

func newFakeMpesaRepo() *fakeMpesaRepo {
	return &fakeMpesaRepo{transactions: make(map[uuid.UUID]*entity.MpesaTransaction)}
}

func (r *fakeMpesaRepo) Create(_ context.Context, txn *entity.MpesaTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	cp := *txn
	r.transactions[txn.ID] = &cp
	return nil
}

func (r *fakeMpesaRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MpesaTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeMpesaRepo) GetByCheckoutRequestID(_ context.Context, checkoutRequestID string) (*entity.MpesaTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.CheckoutRequestID == checkoutRequestID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMpesaRepo) Update(_ context.Context, txn *entity.MpesaTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.transactions[txn.ID] = &cp
	return nil
}

func (r *fakeMpesaRepo) ListBySale(_ context.Context, saleID uuid.UUID) ([]entity.MpesaTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.MpesaTransaction
	for _, t := range r.transactions {
		if t.SaleID != nil && *t.SaleID == saleID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	summary       *repository.SalesSummaryResult
	topProducts   []repository.TopProductResult
	daily         []repository.DailySalesResult
	attendants    []repository.AttendantSalesResult
	lastFrom      time.Time
	lastTo        time.Time
	lastLimit     int
	lastDaysAsked int
}

func (r *fakeReportRepo) GetSalesSummary(_ context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	r.lastFrom, r.lastTo = from, to
	if r.summary == nil {
		return &repository.SalesSummaryResult{}, nil
	}
	return r.summary, nil
}

func (r *fakeReportRepo) GetTopProducts(_ context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	r.lastFrom, r.lastTo, r.lastLimit = from, to, limit
	return r.topProducts, nil
}

func (r *fakeReportRepo) GetDailySales(_ context.Context, days int) ([]repository.DailySalesResult, error) {
	r.lastDaysAsked = days
	return r.daily, nil
}

func (r *fakeReportRepo) GetSalesByAttendant(_ context.Context, from, to time.Time) ([]repository.AttendantSalesResult, error) {
	r.lastFrom, r.lastTo = from, to
	return r.attendants, nil
}
