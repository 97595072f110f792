package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("adds a URL once", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet(0)

		assert.True(t, s.Add("https://tr.wikipedia.org/wiki/Ankara"))
		assert.False(t, s.Add("https://tr.wikipedia.org/wiki/Ankara"))
		assert.True(t, s.Contains("https://tr.wikipedia.org/wiki/Ankara"))
		assert.False(t, s.Contains("https://tr.wikipedia.org/wiki/Bursa"))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("holds more URLs than it was sized for", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet(10)
		for i := range 20000 {
			s.Add(wikicrawl.CanonicalURL(fmt.Sprintf("https://tr.wikipedia.org/wiki/Sayfa_%d", i)))
		}

		assert.Equal(t, 20000, s.Len())
		for i := range 20000 {
			assert.True(t, s.Contains(wikicrawl.CanonicalURL(fmt.Sprintf("https://tr.wikipedia.org/wiki/Sayfa_%d", i))))
		}
		assert.False(t, s.Contains("https://tr.wikipedia.org/wiki/Sayfa_20000"))
	})

	t.Run("has no false positives beyond its capacity", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet(10)
		for i := range 20000 {
			s.Add(wikicrawl.CanonicalURL(fmt.Sprintf("https://tr.wikipedia.org/wiki/Added_%d", i)))
		}
		for i := range 20000 {
			assert.False(t, s.Contains(wikicrawl.CanonicalURL(fmt.Sprintf("https://tr.wikipedia.org/wiki/Missing_%d", i))))
		}
	})
}
