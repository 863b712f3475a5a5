package evaluator

import (
	"github.com/you-humble/pc-builder/internal/converter"
	"github.com/you-humble/pc-builder/internal/model"
)

// TotalPrice sums the price of every populated slot. No currency
// conversion or rounding is applied.
func TotalPrice(b model.Build) float64 {
	var total float64
	for _, s := range model.AllSlots() {
		if rec := b[s]; rec != nil {
			total += converter.RecordPrice(rec)
		}
	}
	return total
}
