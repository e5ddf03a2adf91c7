package handlers

import (
	"fmt"

	"gudang/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProductHandler handles HTTP requests for the inventory ledger.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleAddProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Patch("/:id/stock", h.HandleUpdateStock)
}

// AddProductRequest represents the request body for a new product.
type AddProductRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Category string          `json:"category" validate:"max=100"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock" validate:"gte=0"`
}

// UpdateStockRequest represents the request body for a stock overwrite.
type UpdateStockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

// HandleListProducts returns every product in id order.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badID(c)
	}
	product, err := h.service.GetProduct(int64(id))
	if err != nil {
		return respondError(c, h.log, fmt.Sprintf("Could not retrieve product %d", id), err)
	}
	return c.JSON(product)
}

// HandleAddProduct creates a product.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req AddProductRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.service.AddProduct(req.Name, req.Category, req.Price, req.Stock)
	if err != nil {
		return respondError(c, h.log, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateStock overwrites the stock of a product.
func (h *ProductHandler) HandleUpdateStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badID(c)
	}
	var req UpdateStockRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.service.UpdateStock(int64(id), *req.Stock)
	if err != nil {
		return respondError(c, h.log, fmt.Sprintf("Could not update stock for product %d", id), err)
	}
	return c.JSON(product)
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Product ID must be a positive integer",
	})
}
