package screen

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/wanderlink/admin-gateway/internal/forms"
	"github.com/wanderlink/admin-gateway/internal/resources"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

var (
	ErrModalClosed    = errors.New("modal is not open")
	ErrSubmitInFlight = errors.New("a submission is already pending")
)

// Mode is the modal's tagged variant; edit mode always carries an id, so
// "edit with no id" is unrepresentable.
type Mode string

const (
	ModeClosed Mode = "closed"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type ModalState struct {
	Mode        Mode              `json:"mode"`
	ID          string            `json:"id,omitempty"`
	Draft       map[string]any    `json:"draft,omitempty"`
	Record      json.RawMessage   `json:"record,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Submitting  bool              `json:"submitting"`
	Notice      *Notice           `json:"notice,omitempty"`
}

// ModalScreen owns the create-or-edit modal of one resource screen.
type ModalScreen struct {
	mu    sync.Mutex
	svc   *resources.Service
	def   *resources.Definition
	token string
	// onSuccess runs after a successful submission, once the list cache has
	// been invalidated; the registry wires it to the list's refetch.
	onSuccess func()

	mode        Mode
	id          string
	draft       map[string]any
	record      json.RawMessage
	fieldErrors map[string]string
	submitting  bool
	notice      *Notice
}

func NewModal(svc *resources.Service, def *resources.Definition, token string, onSuccess func()) *ModalScreen {
	return &ModalScreen{
		svc:       svc,
		def:       def,
		token:     token,
		onSuccess: onSuccess,
		mode:      ModeClosed,
	}
}

// OpenCreate opens a blank modal. Any leftover state from a prior edit
// session is discarded first.
func (m *ModalScreen) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	m.mode = ModeCreate
	m.draft = map[string]any{}
}

// OpenEdit fetches the record and pre-populates the draft from it. File
// fields are never carried into the draft; the stored record serves as the
// preview and binaries are only resubmitted when the user re-selects them.
func (m *ModalScreen) OpenEdit(ctx context.Context, id string) error {
	record, err := m.svc.Get(ctx, m.def, m.token, id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	m.mode = ModeEdit
	m.id = id
	m.record = record
	m.draft = draftFromRecord(record, m.def.FileParts)
	return nil
}

// UpdateDraft merges edited fields into the draft.
func (m *ModalScreen) UpdateDraft(fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == ModeClosed {
		return ErrModalClosed
	}
	if m.submitting {
		return ErrSubmitInFlight
	}
	for k, v := range fields {
		m.draft[k] = v
	}
	return nil
}

// Close discards the draft entirely, whether cancelled or clicked away.
func (m *ModalScreen) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return
	}
	m.resetLocked()
}

// Submit validates the draft and sends it upstream. Validation failures
// surface as field errors and issue no request. On success the modal
// closes and the owning list refetches; on failure it stays open with the
// draft intact. A second submit while one is pending is rejected.
func (m *ModalScreen) Submit(ctx context.Context, files []upstream.File) error {
	m.mu.Lock()
	if m.mode == ModeClosed {
		m.mu.Unlock()
		return ErrModalClosed
	}
	if m.submitting {
		m.mu.Unlock()
		return ErrSubmitInFlight
	}
	mode, id := m.mode, m.id
	draft := make(map[string]any, len(m.draft))
	for k, v := range m.draft {
		draft[k] = v
	}
	m.submitting = true
	m.fieldErrors = nil
	m.notice = nil
	m.mu.Unlock()

	var message string
	var err error
	if mode == ModeEdit {
		message, err = m.svc.Update(ctx, m.def, m.token, id, draft, files)
	} else {
		message, err = m.svc.Create(ctx, m.def, m.token, draft, files)
	}

	m.mu.Lock()
	m.submitting = false
	switch {
	case forms.IsValidationError(err):
		m.fieldErrors = forms.GetValidationErrors(err).ByField()
	case err != nil:
		m.notice = &Notice{Level: "error", Message: noticeMessage(err)}
	default:
		m.resetLocked()
		m.notice = &Notice{Level: "success", Message: successMessage(message)}
	}
	m.mu.Unlock()

	if err == nil && m.onSuccess != nil {
		m.onSuccess()
	}
	return err
}

func (m *ModalScreen) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ModalState{
		Mode:        m.mode,
		ID:          m.id,
		Draft:       m.draft,
		Record:      m.record,
		FieldErrors: m.fieldErrors,
		Submitting:  m.submitting,
		Notice:      m.notice,
	}
}

func (m *ModalScreen) resetLocked() {
	m.mode = ModeClosed
	m.id = ""
	m.draft = nil
	m.record = nil
	m.fieldErrors = nil
	m.notice = nil
}

// draftFromRecord copies a fetched record's editable fields into a draft,
// dropping identifiers, bookkeeping fields and file-typed fields.
func draftFromRecord(record json.RawMessage, fileParts []string) map[string]any {
	var fields map[string]any
	if err := json.Unmarshal(record, &fields); err != nil {
		return map[string]any{}
	}
	delete(fields, "_id")
	delete(fields, "__v")
	delete(fields, "createdAt")
	delete(fields, "updatedAt")
	for _, part := range fileParts {
		delete(fields, part)
	}
	return fields
}

func noticeMessage(err error) string {
	var rf *upstream.RequestFailed
	if errors.As(err, &rf) {
		return rf.Message
	}
	return "Something went wrong. Please try again."
}

func successMessage(message string) string {
	if message != "" {
		return message
	}
	return "Saved successfully"
}
