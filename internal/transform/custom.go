package transform

import (
	"sort"

	"github.com/m-mizutani/gasession/pkg/models"
)

// CustomKind is kind of custom definition
type CustomKind int

const (
	// KindDimension keeps value as string
	KindDimension CustomKind = iota
	// KindMetric coerces value to integer
	KindMetric
)

// Scope is value of scope marker of custom definition.
type Scope string

// Scopes of custom definition
const (
	ScopeHit     Scope = "H"
	ScopeSession Scope = "S"
	ScopeUser    Scope = "U"
	ScopeProduct Scope = "P"
)

const (
	// MaxCustomIndex is number of custom dimension/metric slots.
	MaxCustomIndex = 20

	// scope marker of cdN is stored in cd(N+100)
	customScopeOffset = 100
)

// CustomFamily is an indexed field family of custom definition. Prefix has
// leading indices of the field, e.g. product slot number of pr{n}cd{k}.
type CustomFamily struct {
	Field  models.Field
	Prefix []int
}

// Family is constructor of CustomFamily
func Family(f models.Field, prefix ...int) CustomFamily {
	return CustomFamily{Field: f, Prefix: prefix}
}

func (x CustomFamily) index(i int) []int {
	idx := make([]int, 0, len(x.Prefix)+1)
	idx = append(idx, x.Prefix...)
	return append(idx, i)
}

// ExtractCustomFields retrieves custom dimensions or metrics of the family
// from a hit. A value is emitted only when its scope marker is one of scopes.
// It returns models.EmptyCustomFields() if nothing is found.
func ExtractCustomFields(hit *models.Hit, family CustomFamily, maxIndex int, kind CustomKind, scopes ...Scope) []models.CustomField {
	var fields []models.CustomField

	for i := 1; i <= maxIndex; i++ {
		raw, ok := hit.Value(family.Field, family.index(i)...)
		if !ok {
			continue
		}

		marker, ok := hit.String(family.Field, family.index(i+customScopeOffset)...)
		if !ok || !inScopes(Scope(marker), scopes) {
			continue
		}

		var value interface{}
		switch kind {
		case KindMetric:
			n, ok := models.ToInt(raw)
			if !ok {
				continue
			}
			value = n
		default:
			value = models.ToString(raw)
		}

		fields = append(fields, models.CustomField{
			Index: int64Ptr(int64(i)),
			Value: value,
		})
	}

	if len(fields) == 0 {
		return models.EmptyCustomFields()
	}
	return fields
}

func inScopes(s Scope, scopes []Scope) bool {
	for _, scope := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// CollapseCustomFields extracts session and user scope custom definitions from
// all hits of the session. A value of later hit overwrites the same index.
func CollapseCustomFields(ssn *models.Session, family CustomFamily, kind CustomKind) []models.CustomField {
	values := map[int64]interface{}{}

	for _, hit := range ssn.Hits {
		for _, f := range ExtractCustomFields(hit, family, MaxCustomIndex, kind, ScopeSession, ScopeUser) {
			if f.IsPlaceholder() {
				continue
			}
			values[*f.Index] = f.Value
		}
	}

	if len(values) == 0 {
		return models.EmptyCustomFields()
	}

	indices := make([]int64, 0, len(values))
	for idx := range values {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	fields := make([]models.CustomField, len(indices))
	for i, idx := range indices {
		fields[i] = models.CustomField{Index: int64Ptr(idx), Value: values[idx]}
	}
	return fields
}
