package handler

import (
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PrinterHandler handles receipt printer HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// List handles listing printer configurations
func (h *PrinterHandler) List(c *gin.Context) {
	printers, err := h.printerService.ListPrinters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Printers retrieved successfully", printers)
}

// Create handles registering a printer
func (h *PrinterHandler) Create(c *gin.Context) {
	var req request.CreatePrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	printer, err := h.printerService.CreatePrinter(c.Request.Context(), &service.CreatePrinterInput{
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		Port:      req.Port,
		Width:     req.Width,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Printer created successfully", printer)
}

// Update handles updating a printer configuration
func (h *PrinterHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdatePrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	printer, err := h.printerService.UpdatePrinter(c.Request.Context(), id, &service.UpdatePrinterInput{
		Name:    req.Name,
		Type:    req.Type,
		Address: req.Address,
		Port:    req.Port,
		Width:   req.Width,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Printer updated successfully", printer)
}

// SetDefault handles marking a printer as the default
func (h *PrinterHandler) SetDefault(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.printerService.SetDefaultPrinter(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default printer updated", nil)
}

// Delete handles removing a printer configuration
func (h *PrinterHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.printerService.DeletePrinter(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Status handles reporting the default printer's connectivity
func (h *PrinterHandler) Status(c *gin.Context) {
	status, err := h.printerService.GetStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Printer status retrieved", status)
}

// TestPrint handles printing a test receipt on the default printer
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test receipt printed", receipt)
}

// PrintReceipt handles reprinting a sale receipt
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	saleID, err := uuid.Parse(req.SaleID)
	if err != nil {
		response.BadRequest(c, "Invalid sale_id")
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed", receipt)
}
