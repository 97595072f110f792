package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/wikicrawl/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://tr.wikipedia.org/wiki/A"))

	f.Add("https://tr.wikipedia.org/wiki/A")

	assert.True(t, f.Test("https://tr.wikipedia.org/wiki/A"))
	assert.False(t, f.Test("https://tr.wikipedia.org/wiki/B"))
}

func TestFilter_Add_reports_previous_membership(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Add("https://tr.wikipedia.org/wiki/A"), "first add should report absent")
	assert.True(t, f.Add("https://tr.wikipedia.org/wiki/A"), "second add should report present")
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://tr.wikipedia.org/wiki/A")
	f.Add("https://tr.wikipedia.org/wiki/B")
	f.Add("https://tr.wikipedia.org/wiki/C")
	f.Add("https://tr.wikipedia.org/wiki/C")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_zero_capacity_is_usable(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)
	f.Add("https://tr.wikipedia.org/wiki/A")

	assert.True(t, f.Test("https://tr.wikipedia.org/wiki/A"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testLookups = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://tr.wikipedia.org/wiki/Added_%d", i))
	}

	falsePositives := 0
	for i := range testLookups {
		if f.Test(fmt.Sprintf("https://tr.wikipedia.org/wiki/Missing_%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testLookups)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
