package models

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Field is a logical field of a hit. A concrete field code such as "pr3id" or
// "il2pi5cd1" is always built from fieldTable, never by concatenating strings
// at call sites.
type Field int

// Single value fields
const (
	FieldHitType Field = iota
	FieldNonInteraction
	FieldClientID
	FieldTrackingID
	FieldDocumentLocation
	FieldDocumentTitle
	FieldDocumentReferrer
	FieldEventCategory
	FieldEventAction
	FieldEventLabel
	FieldEventValue
	FieldExperiment
	FieldProductAction
	FieldCheckoutStep
	FieldCheckoutOption
	FieldTransactionID
	FieldAffiliation
	FieldTransactionRevenue
	FieldTransactionTax
	FieldTransactionShipping
	FieldCurrencyCode
	FieldCampaignSource
	FieldCampaignMedium
	FieldCampaignName
	FieldCampaignKeyword
	FieldCampaignContent
	FieldGclid
	FieldScreenResolution
	FieldViewportSize
	FieldLanguage

	// Indexed families

	FieldContentGroup
	FieldCustomDimension
	FieldCustomMetric
	FieldProductSKU
	FieldProductName
	FieldProductBrand
	FieldProductCategory
	FieldProductVariant
	FieldProductPrice
	FieldProductQuantity
	FieldProductPosition
	FieldProductCustomDimension
	FieldProductCustomMetric
	FieldImpressionListName
	FieldImpressionSKU
	FieldImpressionName
	FieldImpressionBrand
	FieldImpressionCategory
	FieldImpressionVariant
	FieldImpressionPrice
	FieldImpressionPosition
	FieldImpressionCustomDimension
	FieldImpressionCustomMetric

	numFields
)

// MaxFieldIndex is upper bound of every index in a field code. Scope markers
// of custom definitions are placed at index+100.
const MaxFieldIndex = 200

// fieldSpec describes code of a field: parts[0] + idx[0] + parts[1] + idx[1] + ... + suffix
type fieldSpec struct {
	parts  []string
	suffix string
	ptn    *regexp.Regexp
}

func (x *fieldSpec) arity() int { return len(x.parts) }

func (x *fieldSpec) code(idx []int) (string, bool) {
	if len(idx) != len(x.parts) {
		return "", false
	}

	var b strings.Builder
	for i, p := range x.parts {
		if idx[i] < 1 || MaxFieldIndex < idx[i] {
			return "", false
		}
		b.WriteString(p)
		b.WriteString(strconv.Itoa(idx[i]))
	}
	b.WriteString(x.suffix)
	return b.String(), true
}

func newSpec(suffix string, parts ...string) *fieldSpec {
	return &fieldSpec{parts: parts, suffix: suffix}
}

var fieldTable = map[Field]*fieldSpec{
	FieldHitType:             newSpec("t"),
	FieldNonInteraction:      newSpec("ni"),
	FieldClientID:            newSpec("cid"),
	FieldTrackingID:          newSpec("tid"),
	FieldDocumentLocation:    newSpec("dl"),
	FieldDocumentTitle:       newSpec("dt"),
	FieldDocumentReferrer:    newSpec("dr"),
	FieldEventCategory:       newSpec("ec"),
	FieldEventAction:         newSpec("ea"),
	FieldEventLabel:          newSpec("el"),
	FieldEventValue:          newSpec("ev"),
	FieldExperiment:          newSpec("exp"),
	FieldProductAction:       newSpec("pa"),
	FieldCheckoutStep:        newSpec("cos"),
	FieldCheckoutOption:      newSpec("col"),
	FieldTransactionID:       newSpec("ti"),
	FieldAffiliation:         newSpec("ta"),
	FieldTransactionRevenue:  newSpec("tr"),
	FieldTransactionTax:      newSpec("tt"),
	FieldTransactionShipping: newSpec("ts"),
	FieldCurrencyCode:        newSpec("cu"),
	FieldCampaignSource:      newSpec("cs"),
	FieldCampaignMedium:      newSpec("cm"),
	FieldCampaignName:        newSpec("cn"),
	FieldCampaignKeyword:     newSpec("ck"),
	FieldCampaignContent:     newSpec("ct"),
	FieldGclid:               newSpec("gclid"),
	FieldScreenResolution:    newSpec("sr"),
	FieldViewportSize:        newSpec("vp"),
	FieldLanguage:            newSpec("ul"),

	FieldContentGroup:              newSpec("", "cg"),
	FieldCustomDimension:           newSpec("", "cd"),
	FieldCustomMetric:              newSpec("", "cm"),
	FieldProductSKU:                newSpec("id", "pr"),
	FieldProductName:               newSpec("nm", "pr"),
	FieldProductBrand:              newSpec("br", "pr"),
	FieldProductCategory:           newSpec("ca", "pr"),
	FieldProductVariant:            newSpec("va", "pr"),
	FieldProductPrice:              newSpec("pr", "pr"),
	FieldProductQuantity:           newSpec("qt", "pr"),
	FieldProductPosition:           newSpec("ps", "pr"),
	FieldProductCustomDimension:    newSpec("", "pr", "cd"),
	FieldProductCustomMetric:       newSpec("", "pr", "cm"),
	FieldImpressionListName:        newSpec("nm", "il"),
	FieldImpressionSKU:             newSpec("id", "il", "pi"),
	FieldImpressionName:            newSpec("nm", "il", "pi"),
	FieldImpressionBrand:           newSpec("br", "il", "pi"),
	FieldImpressionCategory:        newSpec("ca", "il", "pi"),
	FieldImpressionVariant:         newSpec("va", "il", "pi"),
	FieldImpressionPrice:           newSpec("pr", "il", "pi"),
	FieldImpressionPosition:        newSpec("ps", "il", "pi"),
	FieldImpressionCustomDimension: newSpec("", "il", "pi", "cd"),
	FieldImpressionCustomMetric:    newSpec("", "il", "pi", "cm"),
}

func init() {
	for f := Field(0); f < numFields; f++ {
		spec, ok := fieldTable[f]
		if !ok {
			panic(fmt.Sprintf("field %d is not defined in fieldTable", f))
		}

		ptn := "^"
		for _, p := range spec.parts {
			ptn += regexp.QuoteMeta(p) + `(\d+)`
		}
		ptn += regexp.QuoteMeta(spec.suffix) + "$"
		spec.ptn = regexp.MustCompile(ptn)
	}
}

// FieldCode returns a field code of hit record. Returns false if number of
// index is not matched with the field or an index is out of range.
func FieldCode(f Field, idx ...int) (string, bool) {
	spec, ok := fieldTable[f]
	if !ok {
		return "", false
	}
	return spec.code(idx)
}

// FieldArity returns a number of indices required by the field
func FieldArity(f Field) int {
	spec, ok := fieldTable[f]
	if !ok {
		return 0
	}
	return spec.arity()
}

// matchIndices extracts indices of the field from a field code.
func matchIndices(f Field, code string) ([]int, bool) {
	spec, ok := fieldTable[f]
	if !ok || spec.arity() == 0 {
		return nil, false
	}

	m := spec.ptn.FindStringSubmatch(code)
	if m == nil {
		return nil, false
	}

	idx := make([]int, len(m)-1)
	for i, s := range m[1:] {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || MaxFieldIndex < n {
			return nil, false
		}
		idx[i] = n
	}
	return idx, true
}

func sortedIndices(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
