package types

// Product is the closed set of policy products a client row may carry.
type Product string

const (
	ProductValueFuneralPlan     Product = "Value Funeral Plan"
	ProductEnhancedPriorityPlan Product = "Enhanced Priority Plan"
	ProductAllInOneFuneral      Product = "All in One Funeral"
	ProductImmediateLifeCover   Product = "Immediate Life Cover"
)

var allProducts = []Product{
	ProductValueFuneralPlan,
	ProductEnhancedPriorityPlan,
	ProductAllInOneFuneral,
	ProductImmediateLifeCover,
}

func AllProducts() []Product {
	out := make([]Product, len(allProducts))
	copy(out, allProducts)
	return out
}

// ValidateProduct degrades any unrecognized value to the first enumeration
// member instead of rejecting the record.
func ValidateProduct(v string) Product {
	for _, p := range allProducts {
		if string(p) == v {
			return p
		}
	}
	return ProductValueFuneralPlan
}
