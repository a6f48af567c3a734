// Package naming generates output file names of the form
// <prefix>_<date>_<counter>.jpg.
package naming

import (
	"fmt"
	"time"

	"photo-brander/internal/domain"

	"github.com/lestrrat-go/strftime"
)

type Namer struct {
	prefix  string
	date    *strftime.Strftime
	padding int
	now     func() time.Time
}

type Option func(*Namer)

// WithClock replaces time.Now as the source of the date part.
func WithClock(now func() time.Time) Option {
	return func(n *Namer) {
		n.now = now
	}
}

// New builds a Namer. dateFormat uses strftime directives, e.g. %Y%m%d.
func New(prefix, dateFormat string, padding int, opts ...Option) (*Namer, error) {
	date, err := strftime.New(dateFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %q: %w", dateFormat, err)
	}

	n := &Namer{
		prefix:  prefix,
		date:    date,
		padding: padding,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Name returns the file name for counter. The date is taken at call time.
func (n *Namer) Name(counter int) string {
	return fmt.Sprintf("%s_%s_%0*d%s", n.prefix, n.date.FormatString(n.now()), n.padding, counter, domain.OutputExtension)
}
