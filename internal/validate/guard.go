// Package validate implements the request-gating layer as an explicit
// ordered list of guards per route. Each guard inspects the request
// context and either passes (nil) or fails with an HTTP status and
// message; Run stops at the first failure. Guards that need the
// database (existence checks) are built as closures in the handler
// package and attach the loaded entity to the Request so the handler
// does not fetch it twice.
package validate

import (
	"fmt"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// Fail is the result of a guard that rejected the request.
type Fail struct {
	Status  int
	Message string
}

// Failf builds a Fail from a format string.
func Failf(status int, format string, args ...any) *Fail {
	return &Fail{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Guard is a single predicate over the request context. A nil return
// means the request may proceed to the next guard.
type Guard func(*Request) *Fail

// Request carries everything the guards of one route act on: the
// submitted payload (as a draft entity plus the raw status string) and
// the entities loaded by existence guards. Now is fixed once per
// request so every time comparison in the chain agrees.
type Request struct {
	Draft           *model.Reservation // payload of a reservation create/update
	SubmittedStatus string             // raw status field from the payload
	NewTable        *model.Table       // payload of a table create
	Reservation     *model.Reservation // attached by a reservation existence guard
	Table           *model.Table       // attached by a table existence guard
	Now             time.Time
}

// Run executes the guards in order and returns the first failure, or
// nil when every guard passes.
func Run(req *Request, guards ...Guard) *Fail {
	for _, g := range guards {
		if f := g(req); f != nil {
			return f
		}
	}
	return nil
}
