package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes under /products.
// writeGuards run before every handler that changes the catalog.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, writeGuards ...fiber.Handler) {
	guarded := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, writeGuards...), handler)
	}

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", guarded(h.HandleCreateProduct)...)
	productRoutes.Put("/:id", guarded(h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", guarded(h.HandleDeleteProduct)...)
	productRoutes.Patch("/:id/update-stock", guarded(h.HandleUpdateStock)...)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product and answers 201 with an empty body
// and a Location header pointing at the new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Debug("invalid create product body", zap.Error(err))
		return respondError(c, fmt.Errorf("%w: invalid request body: %v", models.ErrInvalidInput, err))
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	c.Location(strings.TrimSuffix(c.Path(), "/") + "/" + strconv.FormatUint(uint64(product.ID), 10))
	return c.Status(fiber.StatusCreated).Send(nil)
}

// HandleUpdateProduct replaces a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Debug("invalid update product body", zap.Error(err))
		return respondError(c, fmt.Errorf("%w: invalid request body: %v", models.ErrInvalidInput, err))
	}

	if _, err := h.service.UpdateProduct(c.UserContext(), id, input); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

// HandleDeleteProduct deletes a product. A missing id still answers 200.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

// HandleUpdateStock sets the stock quantity. The body is a bare JSON integer.
func (h *ProductHandler) HandleUpdateStock(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return respondError(c, err)
	}

	var quantity *int
	if err := json.Unmarshal(c.Body(), &quantity); err != nil {
		h.logger.Debug("invalid stock quantity body", zap.Error(err))
		return respondError(c, models.NewValidationError("stockQuantity", "body must be a JSON integer"))
	}
	if quantity == nil {
		return respondError(c, models.NewValidationError("stockQuantity", "stock quantity cannot be null"))
	}

	if _, err := h.service.UpdateStockQuantity(c.UserContext(), id, *quantity); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

func productID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, models.NewValidationError("id", fmt.Sprintf("%q is not a valid product id", raw))
	}
	return uint(id), nil
}
