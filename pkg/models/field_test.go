package models_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCode(t *testing.T) {
	t.Run("Single value field", func(tt *testing.T) {
		code, ok := models.FieldCode(models.FieldProductAction)
		require.True(tt, ok)
		assert.Equal(tt, "pa", code)
	})

	t.Run("Indexed fields", func(tt *testing.T) {
		testCases := []struct {
			field models.Field
			idx   []int
			code  string
		}{
			{models.FieldCustomDimension, []int{5}, "cd5"},
			{models.FieldCustomDimension, []int{130}, "cd130"},
			{models.FieldContentGroup, []int{3}, "cg3"},
			{models.FieldProductSKU, []int{1}, "pr1id"},
			{models.FieldProductCustomMetric, []int{2, 7}, "pr2cm7"},
			{models.FieldImpressionListName, []int{2}, "il2nm"},
			{models.FieldImpressionName, []int{2, 3}, "il2pi3nm"},
			{models.FieldImpressionCustomDimension, []int{1, 2, 103}, "il1pi2cd103"},
		}

		for _, tc := range testCases {
			code, ok := models.FieldCode(tc.field, tc.idx...)
			require.True(tt, ok)
			assert.Equal(tt, tc.code, code)
		}
	})

	t.Run("Wrong arity is absent", func(tt *testing.T) {
		_, ok := models.FieldCode(models.FieldProductSKU)
		assert.False(tt, ok)
		_, ok = models.FieldCode(models.FieldProductSKU, 1, 2)
		assert.False(tt, ok)
		_, ok = models.FieldCode(models.FieldHitType, 1)
		assert.False(tt, ok)
	})

	t.Run("Out of range index is absent", func(tt *testing.T) {
		_, ok := models.FieldCode(models.FieldCustomDimension, 0)
		assert.False(tt, ok)
		_, ok = models.FieldCode(models.FieldCustomDimension, models.MaxFieldIndex+1)
		assert.False(tt, ok)
		_, ok = models.FieldCode(models.FieldCustomDimension, models.MaxFieldIndex)
		assert.True(tt, ok)
	})
}

func TestHitIndices(t *testing.T) {
	hit := models.NewHit(time.Now(), map[string]interface{}{
		"pr3id":    "sku3",
		"pr1id":    "sku1",
		"pr2nm":    "name2",
		"pr10id":   "",
		"il1nm":    "list1",
		"il2nm":    "list2",
		"il2pi3id": "a",
		"il2pi1id": "b",
		"il1pi5id": "c",
		"il2pi2nm": "d",
		"pr1cd1":   "x",
		"pr1cd101": "P",
		"pr0id":    "zero",
	})

	t.Run("Primary slots", func(tt *testing.T) {
		assert.Equal(tt, []int{1, 3}, hit.Indices(models.FieldProductSKU))
		assert.Equal(tt, []int{2}, hit.Indices(models.FieldProductName))
	})

	t.Run("Impression slots of a list", func(tt *testing.T) {
		assert.Equal(tt, []int{1, 3}, hit.Indices(models.FieldImpressionSKU, 2))
		assert.Equal(tt, []int{5}, hit.Indices(models.FieldImpressionSKU, 1))
		assert.Equal(tt, []int{}, hit.Indices(models.FieldImpressionSKU, 3))
	})

	t.Run("Impression lists", func(tt *testing.T) {
		assert.Equal(tt, []int{1, 2}, hit.Indices(models.FieldImpressionListName))
	})

	t.Run("Product custom dimension does not match custom dimension", func(tt *testing.T) {
		assert.Equal(tt, []int{}, hit.Indices(models.FieldCustomDimension))
		assert.Equal(tt, []int{1, 101}, hit.Indices(models.FieldProductCustomDimension, 1))
	})

	t.Run("Wrong number of fixed index", func(tt *testing.T) {
		assert.Nil(tt, hit.Indices(models.FieldImpressionSKU))
		assert.Nil(tt, hit.Indices(models.FieldHitType))
	})
}
