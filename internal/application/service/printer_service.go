package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/domain/repository"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/printer"
	"github.com/google/uuid"
)

// PrinterService manages printer configurations and receipt printing.
type PrinterService struct {
	printerRepo  repository.PrinterRepository
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	printerRepo repository.PrinterRepository,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
) *PrinterService {
	return &PrinterService{
		printerRepo:  printerRepo,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
	}
}

// CreatePrinterInput represents the input for registering a printer
type CreatePrinterInput struct {
	Name      string
	Type      string
	Address   string
	Port      int
	Width     int
	IsDefault bool
}

func validatePrinterType(printerType string) error {
	switch printerType {
	case "usb", "network", "null":
		return nil
	default:
		return apperror.NewBadRequestError("printer type must be usb, network, or null")
	}
}

// CreatePrinter registers a new printer configuration
func (s *PrinterService) CreatePrinter(ctx context.Context, input *CreatePrinterInput) (*entity.PrinterConfig, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("printer name is required")
	}
	if err := validatePrinterType(input.Type); err != nil {
		return nil, err
	}
	if input.Type != "null" && input.Address == "" {
		return nil, apperror.NewBadRequestError("printer address is required")
	}

	config := &entity.PrinterConfig{
		Name:      input.Name,
		Type:      input.Type,
		Address:   input.Address,
		Port:      input.Port,
		Width:     input.Width,
		IsDefault: input.IsDefault,
	}
	if config.Port == 0 {
		config.Port = 9100
	}
	if config.Width == 0 {
		config.Width = 42
	}

	if err := s.printerRepo.Create(ctx, config); err != nil {
		return nil, err
	}
	if config.IsDefault {
		if err := s.printerRepo.SetDefault(ctx, config.ID); err != nil {
			return nil, err
		}
	}
	return config, nil
}

// UpdatePrinterInput represents the input for updating a printer
type UpdatePrinterInput struct {
	Name    *string
	Type    *string
	Address *string
	Port    *int
	Width   *int
}

// UpdatePrinter updates an existing printer configuration
func (s *PrinterService) UpdatePrinter(ctx context.Context, id uuid.UUID, input *UpdatePrinterInput) (*entity.PrinterConfig, error) {
	config, err := s.printerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, apperror.NewNotFoundError("Printer")
	}

	if input.Name != nil {
		config.Name = *input.Name
	}
	if input.Type != nil {
		if err := validatePrinterType(*input.Type); err != nil {
			return nil, err
		}
		config.Type = *input.Type
	}
	if input.Address != nil {
		config.Address = *input.Address
	}
	if input.Port != nil {
		config.Port = *input.Port
	}
	if input.Width != nil {
		config.Width = *input.Width
	}

	if err := s.printerRepo.Update(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}

// ListPrinters returns all printer configurations
func (s *PrinterService) ListPrinters(ctx context.Context) ([]entity.PrinterConfig, error) {
	return s.printerRepo.List(ctx)
}

// SetDefaultPrinter marks a printer as the default
func (s *PrinterService) SetDefaultPrinter(ctx context.Context, id uuid.UUID) error {
	config, err := s.printerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if config == nil {
		return apperror.NewNotFoundError("Printer")
	}
	return s.printerRepo.SetDefault(ctx, id)
}

// DeletePrinter removes a printer configuration
func (s *PrinterService) DeletePrinter(ctx context.Context, id uuid.UUID) error {
	config, err := s.printerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if config == nil {
		return apperror.NewNotFoundError("Printer")
	}
	return s.printerRepo.Delete(ctx, id)
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Name       string `json:"name,omitempty"`
}

// GetStatus returns the default printer's connection status.
func (s *PrinterService) GetStatus(ctx context.Context) (*PrinterStatus, error) {
	config, err := s.printerRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil || config.Type == "null" {
		return &PrinterStatus{Configured: false, Type: "null"}, nil
	}

	p, err := s.open(config)
	if err != nil {
		return &PrinterStatus{Configured: true, Type: config.Type, Name: config.Name}, nil
	}
	defer p.Close()

	return &PrinterStatus{
		Configured: true,
		Connected:  p.IsConnected(),
		Type:       config.Type,
		Name:       config.Name,
	}, nil
}

// open builds a printer.Printer from a stored configuration.
func (s *PrinterService) open(config *entity.PrinterConfig) (printer.Printer, error) {
	address := config.Address
	if config.Type == "network" {
		address = fmt.Sprintf("%s:%d", config.Address, config.Port)
	}
	return printer.NewPrinterFromConfig(config.Type, config.Address, address)
}

// TestPrint sends a test page to the default printer.
// Returns the receipt data so the handler can return it as JSON when no printer is connected.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.BusinessName,
			Address:   settings.BusinessAddress,
			Phone:     settings.BusinessPhone,
			TaxName:   settings.TaxName,
		},
		ReceiptNumber:  "TEST-001",
		Date:           time.Now().Format("2006-01-02 15:04"),
		Attendant:      "System",
		CurrencySymbol: settings.CurrencySymbol,
		Lines: []entity.ReceiptLine{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		Subtotal: 20.00,
		Total:    20.00,
		Payments: []entity.ReceiptPayment{{Method: "cash", Amount: 20.00}},
		Footer:   settings.ReceiptFooter,
	}

	return receipt, s.print(ctx, receipt)
}

// PrintSaleReceipt fetches a completed or held sale and prints its receipt.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(sale, settings)
	return receipt, s.print(ctx, receipt)
}

func (s *PrinterService) print(ctx context.Context, receipt *entity.Receipt) error {
	config, err := s.printerRepo.GetDefault(ctx)
	if err != nil {
		return err
	}
	if config == nil {
		// No printer configured: the receipt is still returned for on-screen display
		return nil
	}

	p, err := s.open(config)
	if err != nil {
		return err
	}
	defer p.Close()

	data := FormatReceipt(receipt, config.Width)
	if err := p.Print(data); err != nil {
		log.Printf("Printer error (%s): %v", receipt.ReceiptNumber, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// BuildReceipt composes a printable receipt from a sale and the store settings.
func BuildReceipt(sale *entity.Sale, settings *entity.AppSettings) *entity.Receipt {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.BusinessName,
			Address:   settings.BusinessAddress,
			Phone:     settings.BusinessPhone,
			TaxName:   settings.TaxName,
		},
		ReceiptNumber:  sale.ReceiptNumber,
		Date:           sale.CreatedAt.Format("2006-01-02 15:04"),
		Attendant:      sale.AttendantName,
		CurrencySymbol: settings.CurrencySymbol,
		Subtotal:       sale.Subtotal,
		Discount:       sale.TotalDiscount,
		Tax:            sale.TaxAmount,
		Total:          sale.Total,
		ChangeAmount:   sale.ChangeAmount,
		Footer:         settings.ReceiptFooter,
	}

	for _, item := range sale.Items {
		receipt.Lines = append(receipt.Lines, entity.ReceiptLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Discount:  item.DiscountAmount,
			Total:     item.Total,
		})
	}

	if len(sale.SplitPayments) > 0 {
		for _, p := range sale.SplitPayments {
			receipt.Payments = append(receipt.Payments, entity.ReceiptPayment{
				Method: p.Method.String(),
				Amount: p.Amount,
			})
		}
	} else {
		amount := sale.Total
		if sale.PaymentMethod == enum.PaymentMethodCash && sale.CashReceived > 0 {
			amount = sale.CashReceived
		}
		receipt.Payments = append(receipt.Payments, entity.ReceiptPayment{
			Method: sale.PaymentMethod.String(),
			Amount: amount,
		})
	}

	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.ReceiptNumber).
		KeyValue("Date:", r.Date)

	if r.Attendant != "" {
		doc.KeyValue("Served by:", r.Attendant)
	}

	doc.Separator('-')

	cur := r.CurrencySymbol
	for _, line := range r.Lines {
		doc.ItemLine(line.Quantity, line.Name, fmt.Sprintf("%s%.2f", cur, line.Total))
		if line.Quantity > 1 {
			doc.TextF("  @ %s%.2f each", cur, line.UnitPrice)
		}
		if line.Discount > 0 {
			doc.TextF("  less %s%.2f discount", cur, line.Discount)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%s%.2f", cur, r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%s%.2f", cur, r.Discount))
	}
	if r.Tax > 0 {
		taxName := r.Header.TaxName
		if taxName == "" {
			taxName = "Tax"
		}
		doc.KeyValue(taxName+":", fmt.Sprintf("%s%.2f", cur, r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%s%.2f", cur, r.Total)).
		SetBold(false)

	for _, p := range r.Payments {
		doc.KeyValue(p.Method+":", fmt.Sprintf("%s%.2f", cur, p.Amount))
	}
	if r.ChangeAmount > 0 {
		doc.KeyValue("Change:", fmt.Sprintf("%s%.2f", cur, r.ChangeAmount))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	} else {
		doc.Text("Thank you for shopping with us!")
	}
	doc.LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
