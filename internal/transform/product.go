package transform

import (
	"sort"

	"github.com/m-mizutani/gasession/pkg/models"
)

const (
	clickAction = "click"
)

// BuildProducts builds product list of hitIndex-th hit. Impressions, single
// product action and checkout/purchase products are appended in this order.
// The result has at least one product (models.EmptyProduct).
func BuildProducts(ssn *models.Session, hitIndex int) []models.Product {
	hit := ssn.Hits[hitIndex]
	pa, hasAction := hit.String(models.FieldProductAction)

	var clickID string
	var hasClickID bool
	if pa == clickAction {
		clickID, hasClickID = hit.String(models.FieldProductSKU, 1)
	}

	var products []models.Product
	clicked := false

	if !hasAction || pa == clickAction {
		for _, l := range hit.Indices(models.FieldImpressionListName) {
			listName := hit.StringPtr(models.FieldImpressionListName, l)

			for _, m := range hit.Indices(models.FieldImpressionSKU, l) {
				p := impressionProduct(hit, l, m)
				p.ProductListName = listName

				if hasClickID && !clicked && p.ProductSKU != nil && *p.ProductSKU == clickID {
					p.IsClick = boolPtr(true)
					clicked = true
				}
				products = append(products, p)
			}
		}
	}

	switch {
	case pa == clickAction && !clicked:
		p := slotProduct(hit, 1)
		p.IsClick = boolPtr(true)
		p.ProductListPosition = hit.IntPtr(models.FieldProductPosition, 1)
		products = append(products, p)

	case pa == "detail" || pa == "add" || pa == "remove":
		p := slotProduct(hit, 1)
		p.ProductListPosition = hit.IntPtr(models.FieldProductPosition, 1)
		products = append(products, p)

	case pa == "checkout" || pa == purchaseAction:
		for _, n := range primarySlots(hit) {
			products = append(products, slotProduct(hit, n))
		}
	}

	if len(products) == 0 {
		return []models.Product{models.EmptyProduct()}
	}
	return products
}

// primarySlots returns product slot numbers having pr{n}id or pr{n}nm.
func primarySlots(hit *models.Hit) []int {
	set := map[int]struct{}{}
	for _, n := range hit.Indices(models.FieldProductSKU) {
		set[n] = struct{}{}
	}
	for _, n := range hit.Indices(models.FieldProductName) {
		set[n] = struct{}{}
	}

	slots := make([]int, 0, len(set))
	for n := range set {
		slots = append(slots, n)
	}
	sort.Ints(slots)
	return slots
}

// price returns micro units of price. Absent or broken price is 0.
func price(hit *models.Hit, f models.Field, idx ...int) *int64 {
	v, _ := hit.Float(f, idx...)
	return int64Ptr(models.ToMicro(v))
}

func slotProduct(hit *models.Hit, n int) models.Product {
	return models.Product{
		ProductSKU:        hit.StringPtr(models.FieldProductSKU, n),
		V2ProductName:     hit.StringPtr(models.FieldProductName, n),
		V2ProductCategory: hit.StringPtr(models.FieldProductCategory, n),
		ProductVariant:    hit.StringPtr(models.FieldProductVariant, n),
		ProductBrand:      hit.StringPtr(models.FieldProductBrand, n),
		ProductPrice:      price(hit, models.FieldProductPrice, n),
		ProductQuantity:   hit.IntPtr(models.FieldProductQuantity, n),
		CustomDimensions: ExtractCustomFields(hit, Family(models.FieldProductCustomDimension, n),
			MaxCustomIndex, KindDimension, ScopeProduct),
		CustomMetrics: ExtractCustomFields(hit, Family(models.FieldProductCustomMetric, n),
			MaxCustomIndex, KindMetric, ScopeProduct),
	}
}

func impressionProduct(hit *models.Hit, l, m int) models.Product {
	return models.Product{
		ProductSKU:          hit.StringPtr(models.FieldImpressionSKU, l, m),
		V2ProductName:       hit.StringPtr(models.FieldImpressionName, l, m),
		V2ProductCategory:   hit.StringPtr(models.FieldImpressionCategory, l, m),
		ProductVariant:      hit.StringPtr(models.FieldImpressionVariant, l, m),
		ProductBrand:        hit.StringPtr(models.FieldImpressionBrand, l, m),
		ProductPrice:        price(hit, models.FieldImpressionPrice, l, m),
		IsImpression:        boolPtr(true),
		ProductListPosition: int64Ptr(int64(m)),
		CustomDimensions: ExtractCustomFields(hit, Family(models.FieldImpressionCustomDimension, l, m),
			MaxCustomIndex, KindDimension, ScopeProduct),
		CustomMetrics: ExtractCustomFields(hit, Family(models.FieldImpressionCustomMetric, l, m),
			MaxCustomIndex, KindMetric, ScopeProduct),
	}
}
