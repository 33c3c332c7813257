package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits stored for a price, matching DECIMAL(10,2)
const PriceScale = 2

// PricePrecision is the total number of digits a price column holds
const PricePrecision = 10

// Bounds on the exponent of an incoming price. Rounding rescales to -PriceScale,
// so its cost grows with the distance between the two.
const (
	minPriceExponent = -20
	maxPriceExponent = PricePrecision
)

// Product represents a row of the Products table
// JSON field names match the table columns; NULL columns are nil
type Product struct {
	ID    int64   `json:"Id"`
	Name  *string `json:"Name"`
	Price *Price  `json:"Price"`
}

// NewProduct builds a product with non-NULL columns
func NewProduct(id int64, name string, price Price) Product {
	return Product{ID: id, Name: &name, Price: &price}
}

// CreateProductRequest is the body of POST /products
// Fields are pointers so that absent values reach the database as NULL
type CreateProductRequest struct {
	Name  *string `json:"Name"`
	Price *Price  `json:"Price"`
}

// Price is a decimal amount always carried with two fractional digits
type Price struct {
	decimal.Decimal
}

// NewPrice rounds d to two fractional digits
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d.Round(PriceScale)}
}

// MustParsePrice parses s and panics on failure. Intended for fixtures.
func MustParsePrice(s string) Price {
	return NewPrice(decimal.RequireFromString(s))
}

// String returns the price with exactly two fractional digits
func (p Price) String() string {
	return p.StringFixed(PriceScale)
}

// MarshalJSON encodes the price as a JSON number with two fractional digits
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.StringFixed(PriceScale)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", string(data), err)
	}
	if err := checkPriceRange(d, string(data)); err != nil {
		return err
	}

	*p = NewPrice(d)
	return nil
}

// checkPriceRange rejects values that cannot fit DECIMAL(10,2) before they are rounded
func checkPriceRange(d decimal.Decimal, raw string) error {
	exp := d.Exponent()
	if exp < minPriceExponent || exp > maxPriceExponent ||
		d.NumDigits()+int(exp) > PricePrecision-PriceScale {
		return fmt.Errorf("price %s is out of range for DECIMAL(%d,%d)",
			raw, PricePrecision, PriceScale)
	}
	return nil
}

// Scan implements sql.Scanner and normalises the scale of the scanned value
func (p *Price) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*p = NewPrice(d)
	return nil
}

// Value implements driver.Valuer, binding the price as a fixed-scale decimal string
func (p Price) Value() (driver.Value, error) {
	return p.StringFixed(PriceScale), nil
}
