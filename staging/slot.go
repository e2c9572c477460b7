package staging

import (
	"errors"
	"fmt"

	"github.com/tlwa/courseadmin/core"
)

var (
	// errors
	ErrFileType = errors.New("file type not allowed; allowed: jpeg, png, webp, gif")
	ErrFileSize = errors.New("file is too large")

	defaultAllowed = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
)

type slotState int

const (
	slotEmpty slotState = iota
	slotExisting
	slotStaged
	slotCleared
)

// Encoding tells the submitter how to encode a slot in the payload.
type Encoding int

const (
	EncodeOmit   Encoding = iota // no change; leave the field out
	EncodeFile                   // attach the staged file (replace)
	EncodeDelete                 // send the explicit empty marker (delete)
)

// Slot holds at most one staged file for one image field (e.g. a course has
// two independent slots: cover and background).
type Slot struct {
	name     string
	allowed  []string
	maxBytes int64

	state       slotState
	existingURL string
	file        File
	preview     *Preview
	err         string
}

func NewSlot(name string) *Slot {
	return &Slot{
		name:     name,
		allowed:  defaultAllowed,
		maxBytes: core.Conf.GetInt64("uploadMaxBytes"),
	}
}

func (s *Slot) Name() string { return s.name }

// SetExisting points the slot at a server-hosted image; any staged file is
// dropped and its preview released.
func (s *Slot) SetExisting(url string) {
	s.dropStaged()
	s.err = ""
	if url == "" {
		s.state = slotEmpty
		s.existingURL = ""
		return
	}
	s.state = slotExisting
	s.existingURL = url
}

// Stage validates and stages a new file. On failure the previously staged
// file (or absence thereof) is left untouched and a slot-scoped error is set.
func (s *Slot) Stage(f File) error {
	if err := s.check(f); err != nil {
		s.err = err.Error()
		return err
	}
	s.dropStaged()
	s.state = slotStaged
	s.file = f
	s.preview = newPreview(f)
	s.err = ""
	return nil
}

func (s *Slot) check(f File) error {
	var ok bool
	for _, ctype := range s.allowed {
		if f.ContentType() == ctype {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%s: %w", f.ContentType(), ErrFileType)
	}
	if s.maxBytes > 0 && f.Size() > s.maxBytes {
		return fmt.Errorf("%d bytes: %w", f.Size(), ErrFileSize)
	}
	return nil
}

// Clear removes whatever the slot holds. Clearing an existing server image
// marks it for deletion on save; clearing a staged file falls back to the
// existing image when there is one.
func (s *Slot) Clear() {
	s.err = ""
	switch s.state {
	case slotStaged:
		s.dropStaged()
		if s.existingURL != "" {
			s.state = slotExisting
		} else {
			s.state = slotEmpty
		}
	case slotExisting:
		s.state = slotCleared
	}
}

// Reset returns the slot to empty, releasing any preview. For form resets
// and teardown.
func (s *Slot) Reset() {
	s.dropStaged()
	s.state = slotEmpty
	s.existingURL = ""
	s.err = ""
}

func (s *Slot) dropStaged() {
	if s.preview != nil {
		s.preview.Release()
		s.preview = nil
	}
	s.file = nil
}

// Encode reports how this slot must appear in the submit payload.
func (s *Slot) Encode() Encoding {
	switch s.state {
	case slotStaged:
		return EncodeFile
	case slotCleared:
		return EncodeDelete
	default:
		return EncodeOmit
	}
}

// File returns the staged file, if any.
func (s *Slot) File() File {
	if s.state != slotStaged {
		return nil
	}
	return s.file
}

// Preview returns the live preview handle for a staged file, the existing
// server URL otherwise, or "".
func (s *Slot) Preview() string {
	switch s.state {
	case slotStaged:
		return s.preview.URL()
	case slotExisting:
		return s.existingURL
	default:
		return ""
	}
}

func (s *Slot) Err() string { return s.err }
