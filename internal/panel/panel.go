// Package panel is the gateway core. Each exported operation drives one
// sign through a fixed sequence of NTCIP round trips and reports failures
// as an *Error carrying a Kind.
package panel

import (
	"time"

	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
)

// Panel holds no per-sign state; it is safe for concurrent use as long as
// the client is.
type Panel struct {
	client ntcip.Client
	log    *log.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewPanel returns a gateway speaking through client. loc is the sign's
// local time zone, used for schedule dates; nil means time.Local.
func NewPanel(client ntcip.Client, logger *log.Logger, loc *time.Location) *Panel {
	if loc == nil {
		loc = time.Local
	}
	return &Panel{
		client: client,
		log:    logger,
		loc:    loc,
		now:    time.Now,
	}
}

// Location is the time zone schedule dates are rendered in.
func (p *Panel) Location() *time.Location {
	return p.loc
}
