package builderkit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashConsistentWithEquality(t *testing.T) {
	assert.Equal(t, Of(0.0), Of(math.Copysign(0, -1)))
	assert.Equal(t, OfSet(map[string]struct{}{"a": {}, "b": {}}), OfSet(map[string]struct{}{"b": {}, "a": {}}))
	assert.Equal(t, OfMap(map[string]int{"a": 1, "b": 2}), OfMap(map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, OfMultimap(map[string][]int{"a": {1, 2}, "b": nil}), OfMultimap(map[string][]int{"a": {1, 2}}))

	x, y := 5, 5
	assert.Equal(t, OfPtr(&x), OfPtr(&y))
	assert.Equal(t, uint64(0), OfPtr[int](nil))
}

func TestHashOrderSensitiveForSlices(t *testing.T) {
	assert.NotEqual(t, OfSlice([]int{1, 2}), OfSlice([]int{2, 1}))

	var a, b Hash
	a.Mix(Of("x"))
	a.Mix(Of("y"))
	b.Mix(Of("y"))
	b.Mix(Of("x"))
	assert.NotEqual(t, a.Sum64(), b.Sum64())
}
