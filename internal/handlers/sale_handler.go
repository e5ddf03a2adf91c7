package handlers

import (
	"gudang/internal/middleware"
	"gudang/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// SaleHandler handles HTTP requests for the sales recorder.
type SaleHandler struct {
	service  *services.SaleService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *services.SaleService, log logrus.FieldLogger) *SaleHandler {
	return &SaleHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the sale routes with the Fiber app.
func (h *SaleHandler) RegisterRoutes(router fiber.Router) {
	saleRoutes := router.Group("/sales")
	saleRoutes.Get("/", h.HandleListSales)
	saleRoutes.Post("/", h.HandleRecordSale)
}

// RecordSaleRequest represents the request body for a sale. Date defaults to today.
type RecordSaleRequest struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// HandleListSales returns every sale, newest first.
func (h *SaleHandler) HandleListSales(c *fiber.Ctx) error {
	sales, err := h.service.ListSales()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve sales", err)
	}
	return c.JSON(sales)
}

// HandleRecordSale records a sale and decrements stock.
func (h *SaleHandler) HandleRecordSale(c *fiber.Ctx) error {
	var req RecordSaleRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	sale, err := h.service.RecordSale(req.ProductID, req.Quantity, req.Date)
	if err != nil {
		return respondError(c, h.log, "Could not record sale", err)
	}

	if session, ok := middleware.SessionFrom(c); ok {
		h.log.WithFields(logrus.Fields{"sale_id": sale.ID, "username": session.Username}).Debug("sale recorded via API")
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}
