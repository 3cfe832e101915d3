package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventPublisher receives a ProductEvent after every successful write.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validate  *validator.Validate
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// ProductServiceOption configures optional ProductService collaborators.
type ProductServiceOption func(*ProductService)

// WithEventPublisher publishes lifecycle events through p.
func WithEventPublisher(p EventPublisher) ProductServiceOption {
	return func(s *ProductService) { s.publisher = p }
}

// WithMetrics records operation outcomes in m.
func WithMetrics(m *metrics.Metrics) ProductServiceOption {
	return func(s *ProductService) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) ProductServiceOption {
	return func(s *ProductService) { s.logger = l }
}

// WithClock replaces time.Now for timestamping.
func WithClock(now func() time.Time) ProductServiceOption {
	return func(s *ProductService) { s.now = now }
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		repo:     repo,
		validate: newInputValidator(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inputMessages holds the message reported for a missing or blank create field.
var inputMessages = map[string]string{
	"name":          "name cannot be null or empty",
	"price":         "price cannot be null",
	"stockQuantity": "stock quantity cannot be null",
	"category":      "category cannot be null or empty",
}

func newInputValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkCreateInput reports only the first violated field, in declaration order.
func (s *ProductService) checkCreateInput(input models.ProductInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate product input: %w", err)
	}
	field := verrs[0].Field()
	msg, ok := inputMessages[field]
	if !ok {
		msg = fmt.Sprintf("failed on the '%s' rule", verrs[0].Tag())
	}
	return models.NewValidationError(field, msg)
}

// GetProducts retrieves all products.
func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	s.observe("list", 0, err)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	s.observe("get", id, err)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// CreateProduct validates input and stores it as a new product.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product, err := s.createProduct(ctx, input)
	var id uint
	if product != nil {
		id = product.ID
	}
	s.observe("create", id, err)
	return product, err
}

func (s *ProductService) createProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := s.checkCreateInput(input); err != nil {
		return nil, err
	}

	product, err := models.NewProduct(*input.Name, input.Description, *input.Price, *input.StockQuantity, *input.Category, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &product); err != nil {
		return nil, err
	}

	s.publish(ctx, models.ProductCreated, product.ID, &product)
	return &product, nil
}

// UpdateProduct replaces every editable field of the product with id.
//
// Unlike CreateProduct, name and category are not checked for blank values.
// Price and stock quantity are still held to the product invariants.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input models.ProductInput) (*models.Product, error) {
	product, err := s.updateProduct(ctx, id, input)
	s.observe("update", id, err)
	return product, err
}

func (s *ProductService) updateProduct(ctx context.Context, id uint, input models.ProductInput) (*models.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Price == nil {
		return nil, models.NewValidationError("price", inputMessages["price"])
	}
	if !input.Price.IsPositive() {
		return nil, models.NewValidationError("price", "price should be positive value")
	}
	if input.StockQuantity == nil {
		return nil, models.NewValidationError("stockQuantity", inputMessages["stockQuantity"])
	}

	updated, err := existing.WithDetails(deref(input.Name), input.Description, *input.Price, *input.StockQuantity, deref(input.Category), s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}

	s.publish(ctx, models.ProductUpdated, updated.ID, &updated)
	return &updated, nil
}

// DeleteProduct deletes a product by its ID. Deleting a missing id succeeds.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.repo.DeleteByID(ctx, id)
	s.observe("delete", id, err)
	if err != nil {
		return err
	}
	s.publish(ctx, models.ProductDeleted, id, nil)
	return nil
}

// UpdateStockQuantity sets the stock of the product with id to newQuantity.
func (s *ProductService) UpdateStockQuantity(ctx context.Context, id uint, newQuantity int) (*models.Product, error) {
	product, err := s.updateStockQuantity(ctx, id, newQuantity)
	s.observe("update_stock", id, err)
	return product, err
}

func (s *ProductService) updateStockQuantity(ctx context.Context, id uint, newQuantity int) (*models.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := existing.WithStockQuantity(newQuantity, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}

	s.publish(ctx, models.ProductStockUpdated, updated.ID, &updated)
	return &updated, nil
}

func (s *ProductService) publish(ctx context.Context, eventType string, productID uint, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: s.now(),
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("type", eventType),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
	}
}

// observe logs and counts the outcome of one operation.
func (s *ProductService) observe(operation string, id uint, err error) {
	fields := []zap.Field{zap.String("operation", operation)}
	if id != 0 {
		fields = append(fields, zap.Uint("product_id", id))
	}

	switch {
	case err == nil:
		s.metrics.ObserveProductOperation(operation, metrics.ResultSuccess)
		if operation != "list" && operation != "get" {
			s.logger.Info("product operation succeeded", fields...)
		}
	case errors.Is(err, models.ErrInvalidInput):
		s.metrics.ObserveProductOperation(operation, metrics.ResultInvalidInput)
		s.logger.Info("product operation rejected", append(fields, zap.Error(err))...)
	case errors.Is(err, models.ErrNotFound):
		s.metrics.ObserveProductOperation(operation, metrics.ResultNotFound)
		s.logger.Warn("product not found", fields...)
	case errors.Is(err, context.Canceled):
		s.metrics.ObserveProductOperation(operation, metrics.ResultFailure)
		s.logger.Info("product operation canceled", fields...)
	default:
		s.metrics.ObserveProductOperation(operation, metrics.ResultFailure)
		s.logger.Error("product operation failed", append(fields, zap.Error(err))...)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
