// Package session implements the preview and commit workflow for editing one image.
package session

import (
	"errors"
	"fmt"
	"image"

	"k8s.io/klog/v2"

	"github.com/tstromberg/albumedit/pkg/raster"
	"github.com/tstromberg/albumedit/pkg/transform"
)

var (
	// ErrBusy is returned when an operation is started while another is active.
	ErrBusy = errors.New("an edit is already active")
	// ErrNotPreviewing is returned when a parameter is changed outside of a preview.
	ErrNotPreviewing = errors.New("no edit is being previewed")
	// ErrNotPending is returned when confirming without a confirmation request.
	ErrNotPending = errors.New("no edit is waiting for confirmation")
)

// State is the position of a Session in its workflow.
type State int

const (
	Idle State = iota
	Previewing
	ConfirmPending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Previewing:
		return "previewing"
	case ConfirmPending:
		return "confirm-pending"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Saver persists a confirmed image.
type Saver interface {
	Save(b *raster.Buffer, path string) error
}

// Session holds the committed image of one album photo and at most one pending edit.
// Previews are always computed from the committed image, never from an earlier preview.
type Session struct {
	path  string
	saver Saver

	committed *raster.Buffer
	preview   *raster.Buffer
	op        transform.Op
	param     transform.Param
	state     State
}

// New returns an idle session for the image committed, stored at path.
func New(committed *raster.Buffer, path string, saver Saver) *Session {
	return &Session{path: path, saver: saver, committed: committed}
}

// Path is where confirmed edits are written.
func (s *Session) Path() string { return s.path }

// State returns the current workflow state.
func (s *Session) State() State { return s.state }

// Op returns the active operation, or transform.None.
func (s *Session) Op() transform.Op { return s.op }

// Param returns the parameter of the active operation.
func (s *Session) Param() transform.Param { return s.param }

// Committed returns the image as it is stored.
func (s *Session) Committed() *raster.Buffer { return s.committed }

// Preview returns the pending result, or nil when idle.
func (s *Session) Preview() *raster.Buffer { return s.preview }

// Begin starts op with an integer parameter and computes the first preview.
func (s *Session) Begin(op transform.Op, value int) error {
	return s.begin(op, transform.Param{Value: value})
}

// BeginCrop starts a crop of region r.
func (s *Session) BeginCrop(r image.Rectangle) error {
	return s.begin(transform.Crop, transform.Param{Region: r})
}

func (s *Session) begin(op transform.Op, p transform.Param) error {
	if s.state != Idle {
		return fmt.Errorf("begin %s while %s %s: %w", op, s.state, s.op, ErrBusy)
	}

	preview, err := transform.Apply(s.committed, op, p)
	if err != nil {
		return fmt.Errorf("begin %s: %w", op, err)
	}

	s.op = op
	s.param = p
	s.preview = preview
	s.state = Previewing
	klog.V(1).Infof("previewing %s %+v on %s", op, p, s.path)
	return nil
}

// SetParameter recomputes the preview from the committed image with value.
// Negate and Crop do not take an integer parameter.
func (s *Session) SetParameter(value int) error {
	if s.state != Previewing {
		return fmt.Errorf("set %s to %d: %w", s.op, value, ErrNotPreviewing)
	}
	if s.op == transform.Negate || s.op == transform.Crop {
		return fmt.Errorf("%s takes no value: %w", s.op, transform.ErrInvalidParameter)
	}
	return s.update(transform.Param{Value: value})
}

// SetRegion replaces the crop region of an active crop.
func (s *Session) SetRegion(r image.Rectangle) error {
	if s.state != Previewing {
		return fmt.Errorf("set crop region %v: %w", r, ErrNotPreviewing)
	}
	if s.op != transform.Crop {
		return fmt.Errorf("%s takes no region: %w", s.op, transform.ErrInvalidParameter)
	}
	return s.update(transform.Param{Region: r})
}

func (s *Session) update(p transform.Param) error {
	preview, err := transform.Apply(s.committed, s.op, p)
	if err != nil {
		return fmt.Errorf("update %s: %w", s.op, err)
	}
	s.param = p
	s.preview = preview
	klog.V(1).Infof("preview %s %+v: %dx%d", s.op, p, preview.Width, preview.Height)
	return nil
}

// RequestConfirm freezes the preview until Confirm or Cancel.
func (s *Session) RequestConfirm() error {
	if s.state != Previewing {
		return fmt.Errorf("request confirm: %w", ErrNotPreviewing)
	}
	s.state = ConfirmPending
	return nil
}

// Confirm writes the preview to storage and makes it the committed image.
// If the write fails, nothing changes and the session stays pending.
func (s *Session) Confirm() error {
	if s.state != ConfirmPending {
		return fmt.Errorf("confirm: %w", ErrNotPending)
	}

	if err := s.saver.Save(s.preview, s.path); err != nil {
		return fmt.Errorf("confirm %s: %w", s.op, err)
	}

	klog.Infof("applied %s to %s", s.op, s.path)
	s.committed = s.preview
	s.reset()
	return nil
}

// Cancel discards any pending edit. The committed image is untouched.
func (s *Session) Cancel() {
	if s.state == Idle {
		return
	}
	klog.V(1).Infof("cancelled %s on %s", s.op, s.path)
	s.reset()
}

func (s *Session) reset() {
	s.preview = nil
	s.op = transform.None
	s.param = transform.Param{}
	s.state = Idle
}
