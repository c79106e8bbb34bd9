// Package guard implements the confirmation step in front of
// credential-protected deletes.
//
// A Guard moves Idle -> ConfirmPending when a target is selected and
// ConfirmPending -> Submitting when the user submits the credential.
// Success returns it to Idle; any failure returns it to ConfirmPending with
// the target and credential kept so the user can retry. A 401 additionally
// sets the field error to the server's message.
package guard

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/packadmin/internal/client/client"
	"github.com/dmitrijs2005/packadmin/internal/logging"
)

type State int

const (
	Idle State = iota
	ConfirmPending
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfirmPending:
		return "confirm-pending"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

var (
	ErrNotPending = errors.New("no delete awaiting confirmation")
	ErrSubmitting = errors.New("delete already in flight")
)

// DeleteFunc dispatches the guarded delete with the credential verbatim.
type DeleteFunc func(ctx context.Context, id int64, credential string) error

type Guard struct {
	name        string
	del         DeleteFunc
	onConfirmed func(ctx context.Context, id int64)
	logger      logging.Logger

	state      State
	target     int64
	credential string
	fieldErr   string
}

// New returns an idle guard for the named resource.
func New(name string, del DeleteFunc, logger logging.Logger) *Guard {
	return &Guard{name: name, del: del, logger: logger.With("guard", name)}
}

// OnConfirmed registers the callback run after a successful delete, once
// the guard is back in Idle.
func (g *Guard) OnConfirmed(fn func(ctx context.Context, id int64)) {
	g.onConfirmed = fn
}

// Select opens the confirmation for id, discarding any previous
// credential and error text.
func (g *Guard) Select(id int64) error {
	if g.state == Submitting {
		return ErrSubmitting
	}
	g.reset()
	g.state = ConfirmPending
	g.target = id
	return nil
}

func (g *Guard) SetCredential(s string) error {
	if g.state != ConfirmPending {
		return ErrNotPending
	}
	g.credential = s
	g.fieldErr = ""
	return nil
}

// Submit sends the delete for the selected target.
func (g *Guard) Submit(ctx context.Context) error {
	if g.state != ConfirmPending {
		return ErrNotPending
	}

	g.state = Submitting
	id := g.target
	err := g.del(ctx, id, g.credential)

	if err == nil {
		g.reset()
		if g.onConfirmed != nil {
			g.onConfirmed(ctx, id)
		}
		return nil
	}

	g.state = ConfirmPending
	var re *client.RejectedError
	if errors.As(err, &re) {
		g.fieldErr = re.Message
		return err
	}
	g.logger.Error(ctx, "delete failed", "id", id, "error", err)
	return err
}

// Cancel closes the confirmation and discards credential and error text.
func (g *Guard) Cancel() {
	if g.state == Submitting {
		return
	}
	g.reset()
}

func (g *Guard) State() State { return g.state }

// Target returns the selected id while a confirmation is open.
func (g *Guard) Target() (int64, bool) {
	if g.state == Idle {
		return 0, false
	}
	return g.target, true
}

// FieldError is the inline text for the credential field, empty when none.
func (g *Guard) FieldError() string { return g.fieldErr }

func (g *Guard) Name() string { return g.name }

func (g *Guard) reset() {
	g.state = Idle
	g.target = 0
	g.credential = ""
	g.fieldErr = ""
}
