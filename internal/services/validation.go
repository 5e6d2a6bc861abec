package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"lapak/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// Prices are stored as decimal(16,2).
const priceScale = 2

var priceLimit = decimal.New(1, 16-priceScale)

// ValidationError reports malformed input, field by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ProductInput is what a caller supplies to create or update a product.
// Category and tag ids replace the product's current links as a whole; an
// absent list and an empty list both leave the product without links. The
// draft flag is not part of it: only SaveDraft and SubmitProduct move it.
type ProductInput struct {
	VendorID    string          `json:"vendor_id" validate:"required,max=36"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"price"`
	ImageURL    string          `json:"image_url" validate:"required"`
	CategoryID  *string         `json:"category_id,omitempty"`
	CategoryIDs []string        `json:"category_ids"`
	TagIDs      []string        `json:"tag_ids"`
}

// Categories merges the single category field older clients send into the set.
func (in *ProductInput) Categories() []string {
	ids := append([]string(nil), in.CategoryIDs...)
	if in.CategoryID != nil && *in.CategoryID != "" {
		ids = append(ids, *in.CategoryID)
	}
	return ids
}

func (in *ProductInput) apply(p *models.Product) {
	p.VendorID = in.VendorID
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.ImageURL = in.ImageURL
}

func newValidator() *validator.Validate {
	v := validator.New()
	// decimals are validated from their exact string form, never a float
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	// positive, at most two decimal places and within the column precision
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.IsPositive() && d.Equal(d.Truncate(priceScale)) && d.LessThan(priceLimit)
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func validateInput(v *validator.Validate, in *ProductInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate product input: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
