package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date layout used by the date input and the
// date filter.
const DateLayout = "2006-01-02"

// Alert messages shown when a product form is rejected.
const (
	MsgInvalidProduct = "Por favor, preencha todos os campos corretamente."
	MsgMissingIPI     = "Por favor, preencha o valor do IPI."
)

var (
	// ErrInvalidProduct is matched by every *ValidationError.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrProductNotFound is returned when no product has the requested ID.
	ErrProductNotFound = errors.New("product not found")
)

// Product is one catalog record. Products are replaced wholesale on edit.
type Product struct {
	ID           int64
	Name         string
	Manufacturer string
	Cost         decimal.Decimal
	Date         time.Time
	// IPI is invalid when the tax does not apply, which is not the same as 0.
	IPI decimal.NullDecimal
}

// DateISO renders the date as yyyy-mm-dd.
func (p Product) DateISO() string {
	return p.Date.Format(DateLayout)
}

// CostText is the plain numeric form of the cost (0.8, 100), used for
// filtering and form pre-fill.
func (p Product) CostText() string {
	return p.Cost.String()
}

// IPIText is the plain numeric form of the IPI, or N/A when absent.
func (p Product) IPIText() string {
	if !p.IPI.Valid {
		return IPINotApplicable
	}
	return p.IPI.Decimal.String()
}

// ProductInput is an add or edit form submission.
type ProductInput struct {
	Name         string `validate:"required"`
	Manufacturer string `validate:"required"`
	Cost         string `validate:"required,amount"`
	Date         string `validate:"required,datetime=2006-01-02"`
	HasIPI       bool
	IPI          string `validate:"required_if=HasIPI true,omitempty,amount"`
}

// InputFromProduct returns the form values that reproduce p.
func InputFromProduct(p Product) ProductInput {
	in := ProductInput{
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		Cost:         p.CostText(),
		Date:         p.DateISO(),
		HasIPI:       p.IPI.Valid,
	}
	if p.IPI.Valid {
		in.IPI = p.IPI.Decimal.String()
	}
	return in
}

func (in ProductInput) normalize() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Manufacturer = strings.TrimSpace(in.Manufacturer)
	in.Cost = strings.TrimSpace(in.Cost)
	in.Date = strings.TrimSpace(in.Date)
	in.IPI = strings.TrimSpace(in.IPI)
	if !in.HasIPI {
		in.IPI = ""
	}
	return in
}

// Validate checks the submission and returns a *ValidationError listing
// every failing field.
func (in ProductInput) Validate() error {
	in = in.normalize()
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate product: %w", err)
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

// toProduct builds the stored record. The input must have passed Validate.
func (in ProductInput) toProduct(id int64) (Product, error) {
	in = in.normalize()

	cost, ok := ParseDecimal(in.Cost)
	if !ok {
		return Product{}, &ValidationError{Fields: map[string]string{"Cost": "amount"}}
	}
	date, err := time.Parse(DateLayout, in.Date)
	if err != nil {
		return Product{}, &ValidationError{Fields: map[string]string{"Date": "datetime"}}
	}

	p := Product{
		ID:           id,
		Name:         strings.ToUpper(in.Name),
		Manufacturer: strings.ToUpper(in.Manufacturer),
		Cost:         cost,
		Date:         date,
	}
	if in.HasIPI {
		p.IPI = ParseNullDecimal(in.IPI)
	}
	return p, nil
}

// ValidationError reports a rejected product submission.
type ValidationError struct {
	// Fields maps the failing ProductInput field to the failed rule.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f, tag := range e.Fields {
		names = append(names, fmt.Sprintf("%s (%s)", f, tag))
	}
	sort.Strings(names)
	return "invalid product: " + strings.Join(names, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidProduct
}

// Message is the alert text for the user. A missing IPI value gets its own
// prompt only when every other field is fine.
func (e *ValidationError) Message() string {
	if _, ok := e.Fields["IPI"]; ok && len(e.Fields) == 1 {
		return MsgMissingIPI
	}
	return MsgInvalidProduct
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "amount" accepts a non-negative number written with "." or ",".
	if err := v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, ok := ParseDecimal(fl.Field().String())
		return ok && !d.IsNegative()
	}); err != nil {
		panic(err)
	}
	return v
}
