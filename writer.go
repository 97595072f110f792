package wikicrawl

import "context"

// Unit is one written page. It is immutable once written.
type Unit struct {
	Sequence int
	Title    string
	Body     string

	// URL is the canonical URL the page was fetched from.
	URL CanonicalURL
}

// Validate returns an error if the unit contains invalid fields.
func (u *Unit) Validate() error {
	if u.Sequence < 1 {
		return Errorf(EINVALID, "unit sequence must be positive")
	}
	if u.URL == "" {
		return Errorf(EINVALID, "unit URL required")
	}
	return nil
}

// Writer persists output units.
type Writer interface {
	// Write stores the unit and returns its identifier (e.g. a file name).
	// Returns an error with code EWRITE when storage fails.
	Write(ctx context.Context, unit *Unit) (id string, err error)
}
