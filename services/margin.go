// Package services provides the margin calculator, the in-memory product
// catalog and the export adapters.
package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Driver tags which calculator field is authoritative. The other one is
// always derived.
type Driver string

const (
	DriverMargin    Driver = "margin"
	DriverSalePrice Driver = "salePrice"
)

// ParseDriver maps a form value to a Driver, defaulting to DriverMargin.
func ParseDriver(s string) Driver {
	if Driver(strings.TrimSpace(s)) == DriverSalePrice {
		return DriverSalePrice
	}
	return DriverMargin
}

// FreightType only selects an explanatory label; it never changes a number.
type FreightType string

const (
	FreightCIF FreightType = "CIF"
	FreightFOB FreightType = "FOB"
)

// ParseFreightType maps a form value to a FreightType, defaulting to CIF.
func ParseFreightType(s string) FreightType {
	if FreightType(strings.ToUpper(strings.TrimSpace(s))) == FreightFOB {
		return FreightFOB
	}
	return FreightCIF
}

// Label is the radio button caption for the freight type.
func (f FreightType) Label() string {
	if f == FreightFOB {
		return "FOB (Livre a Bordo)"
	}
	return "CIF (Custo, Seguro e Frete)"
}

// Explanation is the text shown under the freight selector.
func (f FreightType) Explanation() string {
	if f == FreightFOB {
		return "FOB: O comprador é responsável pelos custos e riscos do transporte a partir do porto de embarque."
	}
	return "CIF: O vendedor é responsável pelos custos e riscos do transporte até o porto de destino."
}

var hundred = decimal.NewFromInt(100)

// MarginInput is one calculator evaluation. Only the field selected by
// Driver is read; the other is ignored.
type MarginInput struct {
	Cost             decimal.NullDecimal
	Driver           Driver
	MarginPercent    decimal.NullDecimal
	DesiredSalePrice decimal.NullDecimal
}

// MarginResult holds the derived values. All of them are zero when the
// inputs cannot produce a meaningful result.
type MarginResult struct {
	// Cost is the effective cost: the input, or zero when it is missing or
	// negative.
	Cost decimal.Decimal
	// SalePrice is the effective sale price: derived under DriverMargin,
	// the desired sale price under DriverSalePrice.
	SalePrice decimal.Decimal
	// MarginPercent is the margin in effect: the input under DriverMargin,
	// derived under DriverSalePrice.
	MarginPercent decimal.Decimal
	// MarginOnSale is recomputed from the effective cost and sale price.
	MarginOnSale decimal.Decimal
}

// Compute evaluates the calculator. It never fails: invalid, negative or
// undefined results collapse to zero.
func Compute(in MarginInput) MarginResult {
	var res MarginResult

	switch in.Driver {
	case DriverSalePrice:
		res.MarginPercent = MarginFromSalePrice(in.Cost, in.DesiredSalePrice)
		if in.DesiredSalePrice.Valid && in.DesiredSalePrice.Decimal.IsPositive() {
			res.SalePrice = in.DesiredSalePrice.Decimal
		}
	default:
		res.SalePrice = SalePriceFromMargin(in.Cost, in.MarginPercent)
		if in.MarginPercent.Valid && in.MarginPercent.Decimal.IsPositive() {
			res.MarginPercent = in.MarginPercent.Decimal
		}
	}

	if validCost(in.Cost) {
		res.Cost = in.Cost.Decimal
	}
	res.MarginOnSale = MarginOnSale(res.Cost, res.SalePrice)
	return res
}

// SalePriceFromMargin returns cost / (1 - margin/100), or zero when the cost
// or margin is missing, the margin is 100% or more, or the result is negative.
// It divides once, as cost*100 / (100-margin), so margins just below 100
// keep their precision.
func SalePriceFromMargin(cost, margin decimal.NullDecimal) decimal.Decimal {
	if !validCost(cost) || !margin.Valid {
		return decimal.Zero
	}
	denom := hundred.Sub(margin.Decimal)
	if !denom.IsPositive() {
		return decimal.Zero
	}
	price := cost.Decimal.Mul(hundred).Div(denom)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// MarginFromSalePrice returns (sale - cost) / sale * 100, or zero when the
// cost is missing, the sale price is missing or not positive, or the margin
// would be negative.
func MarginFromSalePrice(cost, salePrice decimal.NullDecimal) decimal.Decimal {
	if !validCost(cost) || !salePrice.Valid || !salePrice.Decimal.IsPositive() {
		return decimal.Zero
	}
	margin := salePrice.Decimal.Sub(cost.Decimal).Div(salePrice.Decimal).Mul(hundred)
	if margin.IsNegative() {
		return decimal.Zero
	}
	return margin
}

// MarginOnSale is the margin actually earned at salePrice. It is zero when
// the sale price is not positive and negative when selling below cost.
func MarginOnSale(cost, salePrice decimal.Decimal) decimal.Decimal {
	if !salePrice.IsPositive() {
		return decimal.Zero
	}
	return salePrice.Sub(cost).Div(salePrice).Mul(hundred)
}

func validCost(cost decimal.NullDecimal) bool {
	return cost.Valid && !cost.Decimal.IsNegative()
}

// CalculatorState is the live text of the calculator form.
type CalculatorState struct {
	Cost      string
	Margin    string
	SalePrice string
	Driver    Driver
	Freight   FreightType
}

// ParseCalculatorState builds a state from raw form values.
func ParseCalculatorState(cost, margin, salePrice, driver, freight string) CalculatorState {
	return CalculatorState{
		Cost:      strings.TrimSpace(cost),
		Margin:    strings.TrimSpace(margin),
		SalePrice: strings.TrimSpace(salePrice),
		Driver:    ParseDriver(driver),
		Freight:   ParseFreightType(freight),
	}
}

// Input converts the form text into a MarginInput.
func (s CalculatorState) Input() MarginInput {
	return MarginInput{
		Cost:             ParseNullDecimal(s.Cost),
		Driver:           s.Driver,
		MarginPercent:    ParseNullDecimal(s.Margin),
		DesiredSalePrice: ParseNullDecimal(s.SalePrice),
	}
}

// MarginLocked reports whether the margin input is disabled: the sale price
// drives and holds a positive value.
func (s CalculatorState) MarginLocked() bool {
	if s.Driver != DriverSalePrice {
		return false
	}
	d, ok := ParseDecimal(s.SalePrice)
	return ok && d.IsPositive()
}

// SalePriceLocked reports whether the sale price input is disabled: the
// margin drives and holds a positive value.
func (s CalculatorState) SalePriceLocked() bool {
	if s.Driver != DriverMargin {
		return false
	}
	d, ok := ParseDecimal(s.Margin)
	return ok && d.IsPositive()
}

// Reconcile computes the results and rewrites the non-authoritative field
// from them. A derived value that is not positive clears the field so no
// stale number survives a driver switch.
func Reconcile(s CalculatorState) (CalculatorState, MarginResult) {
	res := Compute(s.Input())

	switch s.Driver {
	case DriverSalePrice:
		s.Margin = ""
		if res.MarginPercent.IsPositive() {
			s.Margin = res.MarginPercent.StringFixed(2)
		}
	default:
		s.SalePrice = ""
		if res.SalePrice.IsPositive() {
			s.SalePrice = res.SalePrice.StringFixed(2)
		}
	}
	return s, res
}
