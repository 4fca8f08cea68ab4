package service

import (
	"testing"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedCashSale() *entity.Sale {
	return &entity.Sale{
		ReceiptNumber: "RCP-1724900000000",
		AttendantName: "Jane Attendant",
		Items: []entity.SaleItem{
			{Name: "Rice 5kg", Quantity: 2, Price: 450, Total: 900},
			{Name: "Sugar 2kg", Quantity: 1, Price: 280, DiscountAmount: 28, Total: 252},
		},
		Subtotal:      1152,
		TotalDiscount: 28,
		TaxAmount:     184.32,
		Total:         1336.32,
		PaymentMethod: enum.PaymentMethodCash,
		CashReceived:  1500,
		ChangeAmount:  163.68,
		Status:        enum.SaleStatusCompleted,
		CreatedAt:     time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
	}
}

func storeSettings() *entity.AppSettings {
	return &entity.AppSettings{
		BusinessName:    "Duka Mart",
		BusinessAddress: "Moi Avenue, Nairobi",
		BusinessPhone:   "0712000000",
		CurrencySymbol:  "KSh",
		TaxName:         "VAT",
		ReceiptFooter:   "Thank you for shopping with us!",
	}
}

func TestBuildReceiptMapsSaleLines(t *testing.T) {
	receipt := BuildReceipt(completedCashSale(), storeSettings())

	assert.Equal(t, "Duka Mart", receipt.Header.StoreName)
	assert.Equal(t, "RCP-1724900000000", receipt.ReceiptNumber)
	assert.Equal(t, "Jane Attendant", receipt.Attendant)

	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Rice 5kg", receipt.Lines[0].Name)
	assert.Equal(t, 2, receipt.Lines[0].Quantity)
	assert.InDelta(t, 28, receipt.Lines[1].Discount, epsilon)

	// Cash sales print the tendered amount, not the sale total
	require.Len(t, receipt.Payments, 1)
	assert.Equal(t, "cash", receipt.Payments[0].Method)
	assert.InDelta(t, 1500, receipt.Payments[0].Amount, epsilon)
	assert.InDelta(t, 163.68, receipt.ChangeAmount, epsilon)
}

func TestBuildReceiptListsSplitPayments(t *testing.T) {
	sale := completedCashSale()
	sale.PaymentMethod = enum.PaymentMethodMixed
	sale.CashReceived = 0
	sale.ChangeAmount = 0
	sale.SplitPayments = []entity.SplitPayment{
		{Method: enum.PaymentMethodCash, Amount: 1000},
		{Method: enum.PaymentMethodMpesa, Amount: 336.32},
	}

	receipt := BuildReceipt(sale, storeSettings())

	require.Len(t, receipt.Payments, 2)
	assert.Equal(t, "cash", receipt.Payments[0].Method)
	assert.Equal(t, "mpesa", receipt.Payments[1].Method)
	assert.InDelta(t, 336.32, receipt.Payments[1].Amount, epsilon)
}

func TestFormatReceiptRendersAllSections(t *testing.T) {
	receipt := BuildReceipt(completedCashSale(), storeSettings())

	data := string(FormatReceipt(receipt, 42))

	assert.Contains(t, data, "Duka Mart")
	assert.Contains(t, data, "RCP-1724900000000")
	assert.Contains(t, data, "Rice 5kg")
	assert.Contains(t, data, "TOTAL")
	assert.Contains(t, data, "Thank you for shopping with us!")
}
