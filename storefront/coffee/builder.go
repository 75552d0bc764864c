// Package coffee builds the configurable custom-coffee product: live
// price from option selections, finalized into a cart-ready item.
package coffee

import (
	"fmt"

	"github.com/dombialcz/SevenTestsShop/storefront/catalog"
	"github.com/google/uuid"
)

// Customization records the raw option selections attached to a
// finalized custom coffee. Its presence on a cart entry makes the
// entry non-mergeable.
type Customization struct {
	Size     string `json:"size"`
	Strength int    `json:"strength"`
	Milk     int    `json:"milk"`
	Sugar    int    `json:"sugar"`
}

// Option bounds and price deltas.
const (
	BasePrice = 2.00

	MinStrength = 1
	MaxStrength = 5
	MinMilk     = 0
	MaxMilk     = 3
	MinSugar    = 0
	MaxSugar    = 5

	strengthUnitPrice = 0.50
	milkUnitPrice     = 0.30
	sugarUnitPrice    = 0.10
)

var sizePrices = map[string]float64{
	"small":  0.00,
	"medium": 0.50,
	"large":  1.00,
}

// Builder holds the option state for one custom coffee. The zero
// builder is not valid; use NewBuilder.
type Builder struct {
	size     string
	strength int
	milk     int
	sugar    int
}

func NewBuilder() *Builder {
	return &Builder{
		size:     "medium",
		strength: 2,
		milk:     0,
		sugar:    0,
	}
}

// SetStrength clamps v into [MinStrength, MaxStrength].
func (b *Builder) SetStrength(v int) {
	b.strength = clamp(v, MinStrength, MaxStrength)
}

// SetMilk clamps v into [MinMilk, MaxMilk].
func (b *Builder) SetMilk(v int) {
	b.milk = clamp(v, MinMilk, MaxMilk)
}

// SetSugar clamps v into [MinSugar, MaxSugar].
func (b *Builder) SetSugar(v int) {
	b.sugar = clamp(v, MinSugar, MaxSugar)
}

// SetSize accepts only the known sizes; an unknown value leaves the
// current selection in place.
func (b *Builder) SetSize(size string) {
	if _, ok := sizePrices[size]; ok {
		b.size = size
	}
}

func (b *Builder) Size() string  { return b.size }
func (b *Builder) Strength() int { return b.strength }
func (b *Builder) Milk() int     { return b.milk }
func (b *Builder) Sugar() int    { return b.sugar }

// Price returns the live price: base plus each option's contribution.
func (b *Builder) Price() float64 {
	return BasePrice +
		float64(b.strength)*strengthUnitPrice +
		float64(b.milk)*milkUnitPrice +
		float64(b.sugar)*sugarUnitPrice +
		sizePrices[b.size]
}

// Finalize produces the product-shaped item and the customization
// record handed to the cart together. Every call mints a fresh
// synthetic id, so a finalized coffee never merges with a prior one.
func (b *Builder) Finalize() (catalog.Product, *Customization) {
	custom := &Customization{
		Size:     b.size,
		Strength: b.strength,
		Milk:     b.milk,
		Sugar:    b.sugar,
	}

	product := catalog.Product{
		ID:          "custom-" + uuid.NewString(),
		Name:        "Custom Coffee",
		Category:    "Coffee",
		Price:       b.Price(),
		Description: fmt.Sprintf("%s custom coffee, strength %d, milk %d, sugar %d", b.size, b.strength, b.milk, b.sugar),
		Image:       "/images/custom-coffee.jpg",
		InStock:     true,
	}

	return product, custom
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
