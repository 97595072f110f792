package mock

import "github.com/fwojciec/wikicrawl"

var _ wikicrawl.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikicrawl.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
