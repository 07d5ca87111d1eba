package screen

import (
	"context"
	"errors"
	"sync"

	"github.com/wanderlink/admin-gateway/internal/resources"
)

var (
	ErrNoTarget       = errors.New("no delete target armed")
	ErrDeleteInFlight = errors.New("a delete is already in progress")
)

type DeleteState struct {
	ArmedID  string  `json:"armedId,omitempty"`
	Deleting bool    `json:"deleting"`
	Notice   *Notice `json:"notice,omitempty"`
}

// DeleteFlow is the shared two-step delete guard of one resource screen:
// a trigger arms the dialog with a target id, confirmation issues exactly
// one delete for the armed id.
type DeleteFlow struct {
	mu        sync.Mutex
	svc       *resources.Service
	def       *resources.Definition
	token     string
	onSuccess func()

	armed    string
	deleting bool
	notice   *Notice
}

func NewDelete(svc *resources.Service, def *resources.Definition, token string, onSuccess func()) *DeleteFlow {
	return &DeleteFlow{svc: svc, def: def, token: token, onSuccess: onSuccess}
}

// Arm stages id for deletion. Arming while the dialog is already open
// replaces the target; it never queues. Ignored while a delete is running.
func (d *DeleteFlow) Arm(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleting {
		return
	}
	d.armed = id
	d.notice = nil
}

// Cancel closes the dialog and clears the target. Ignored while deleting.
func (d *DeleteFlow) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleting {
		return
	}
	d.armed = ""
}

// Confirm deletes the armed record. The armed id is cleared on every
// terminal outcome so a stale target can never be deleted by a later,
// unrelated confirm.
func (d *DeleteFlow) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.deleting {
		d.mu.Unlock()
		return ErrDeleteInFlight
	}
	if d.armed == "" {
		d.mu.Unlock()
		return ErrNoTarget
	}
	id := d.armed
	d.deleting = true
	d.mu.Unlock()

	message, err := d.svc.Delete(ctx, d.def, d.token, id)

	d.mu.Lock()
	d.deleting = false
	d.armed = ""
	if err != nil {
		d.notice = &Notice{Level: "error", Message: noticeMessage(err)}
	} else {
		d.notice = &Notice{Level: "success", Message: successMessage(message)}
	}
	d.mu.Unlock()

	if err == nil && d.onSuccess != nil {
		d.onSuccess()
	}
	return err
}

func (d *DeleteFlow) State() DeleteState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DeleteState{ArmedID: d.armed, Deleting: d.deleting, Notice: d.notice}
}
