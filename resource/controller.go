package resource

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tlwa/courseadmin/core"
	"github.com/tlwa/courseadmin/listview"
	"github.com/tlwa/courseadmin/restapi"
	"github.com/tlwa/courseadmin/staging"
)

// State of one form instance.
// Idle → Creating | Editing(id) → Submitting → Idle on success, or back to
// Creating/Editing with an error annotation on failure.
type State int

const (
	StateIdle State = iota
	StateCreating
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

var (
	// errors
	ErrNotEditing   = errors.New("no create or edit in progress")
	ErrUnknownField = errors.New("unknown field")
	ErrUnknownSlot  = errors.New("unknown image slot")
	ErrCancelled    = errors.New("cancelled")
)

// Controller manages the list view and create/edit form of one resource as
// one coupled unit. It is owned by a single goroutine (the interaction
// loop); it holds no locks.
type Controller struct {
	schema Schema
	api    API
	log    core.Logger

	rows    []Row
	loadErr string

	state     State
	editID    string
	values    map[string]string
	slots     map[string]*staging.Slot
	fieldErrs map[string]string
	formErr   string

	// Confirm gates Remove; nil means always confirmed.
	Confirm func(id string) bool
}

func NewController(schema Schema, api API, logger core.Logger) *Controller {
	if logger == nil {
		logger = core.NopLogger{}
	}
	c := &Controller{
		schema: schema,
		api:    api,
		log:    logger,
	}
	c.resetForm()
	c.state = StateIdle
	return c
}

// Load fetches the collection. On success the in-memory list is replaced;
// on failure the prior list is kept and a transient error surfaced. Never
// retried; call again to retry manually.
func (c *Controller) Load(ctx context.Context) error {
	rows, err := c.api.List(ctx)
	if err != nil {
		c.loadErr = errMessage(err)
		c.log.Warn("load failed", map[string]interface{}{"resource": c.schema.Name, "err": err.Error()})
		return err
	}
	c.rows = rows
	c.loadErr = ""
	return nil
}

// Rows returns the loaded collection.
func (c *Controller) Rows() []Row { return c.rows }

// Filtered applies the client-side substring filter over the loaded rows.
func (c *Controller) Filtered(q string) []Row {
	fields := c.schema.SearchFields
	if fields == nil {
		fields = []string{c.schema.idField(), "title", "name"}
	}
	return listview.Filter(c.rows, fields, q)
}

// StartCreate resets the form to schema defaults and marks it as creating.
func (c *Controller) StartCreate() {
	c.resetForm()
	c.state = StateCreating
}

// StartEdit copies a row's fields into form state, clears any staged file
// and marks the form as editing that row.
func (c *Controller) StartEdit(row Row) {
	c.resetForm()
	c.state = StateEditing
	c.editID = RowID(c.schema, row)
	for _, f := range c.schema.Fields {
		if v, ok := row[f.Name]; ok {
			c.values[f.Name] = Stringify(v)
		}
	}
	for _, spec := range c.schema.Slots {
		c.slots[spec.Name].SetExisting(Stringify(row[spec.Name]))
	}
}

// SetField updates one field, constrained to its declared type.
func (c *Controller) SetField(name, value string) error {
	fld, ok := c.schema.Field(name)
	if !ok {
		return errors.Wrap(ErrUnknownField, name)
	}
	if err := checkType(fld, value); err != nil {
		c.fieldErrs[name] = err.Error()
		return err
	}
	c.values[name] = value
	delete(c.fieldErrs, name)
	return nil
}

// Value returns the current form value of a field.
func (c *Controller) Value(name string) string { return c.values[name] }

// StageFile stages a file into an image slot; a rejected file leaves the
// previously staged one untouched.
func (c *Controller) StageFile(slot string, f staging.File) error {
	sl, ok := c.slots[slot]
	if !ok {
		return errors.Wrap(ErrUnknownSlot, slot)
	}
	if err := sl.Stage(f); err != nil {
		c.fieldErrs[slot] = err.Error()
		return err
	}
	delete(c.fieldErrs, slot)
	return nil
}

// ClearImage removes the slot's image; an existing server image is marked
// for deletion on save.
func (c *Controller) ClearImage(slot string) {
	if sl, ok := c.slots[slot]; ok {
		sl.Clear()
	}
}

// Slot exposes an image slot (preview, error state).
func (c *Controller) Slot(name string) *staging.Slot { return c.slots[name] }

// Submit validates, sends the create or update and re-fetches the list.
// A submit while one is in flight is a no-op. On failure the form state is
// preserved for correction and the backend message surfaced verbatim.
func (c *Controller) Submit(ctx context.Context) error {
	switch c.state {
	case StateSubmitting:
		return nil
	case StateCreating, StateEditing:
	default:
		return ErrNotEditing
	}

	if err := c.validate(); err != nil {
		return err
	}

	prev, editID := c.state, c.editID
	c.state = StateSubmitting
	c.formErr = ""

	var err error
	if prev == StateEditing {
		err = c.api.Update(ctx, editID, c.payload())
	} else {
		err = c.api.Create(ctx, c.payload())
	}
	if err != nil {
		c.state = prev
		c.formErr = errMessage(err)
		return err
	}

	c.resetForm()
	c.state = StateIdle
	// the re-fetch must observe the mutation: it only starts here, after
	// the mutation completed
	_ = c.Load(ctx)
	return nil
}

// Remove confirms, deletes and re-fetches. Deleting the row currently open
// for editing exits edit mode and clears staged files.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if c.Confirm != nil && !c.Confirm(id) {
		return ErrCancelled
	}
	if err := c.api.Remove(ctx, id); err != nil {
		c.formErr = errMessage(err)
		return err
	}
	if c.state == StateEditing && c.editID == id {
		c.resetForm()
		c.state = StateIdle
	}
	_ = c.Load(ctx)
	return nil
}

func (c *Controller) State() State      { return c.state }
func (c *Controller) EditingID() string { return c.editID }
func (c *Controller) FormErr() string   { return c.formErr }
func (c *Controller) LoadErr() string   { return c.loadErr }

// FieldErr returns the error annotation of one field or slot.
func (c *Controller) FieldErr(name string) string { return c.fieldErrs[name] }

// Close releases staged previews; call on teardown. A request still in
// flight simply has its result discarded.
func (c *Controller) Close() {
	c.resetForm()
	c.state = StateIdle
}

func (c *Controller) resetForm() {
	c.editID = ""
	c.formErr = ""
	c.fieldErrs = make(map[string]string)
	c.values = make(map[string]string, len(c.schema.Fields))
	for _, f := range c.schema.Fields {
		c.values[f.Name] = f.Default
	}
	if c.slots == nil {
		c.slots = make(map[string]*staging.Slot, len(c.schema.Slots))
		for _, spec := range c.schema.Slots {
			c.slots[spec.Name] = staging.NewSlot(spec.Name)
		}
		return
	}
	for _, sl := range c.slots {
		sl.Reset()
	}
}

// validate applies the client-side rules; a failing form never issues a
// request.
func (c *Controller) validate() error {
	flds := make([]core.FieldError, 0)
	report := func(name, msg string) {
		flds = append(flds, core.FieldError{Field: name, Error: msg})
	}

	for _, f := range c.schema.Fields {
		val := core.CleanString(c.values[f.Name])
		if f.Required && val == "" {
			report(f.Name, "this field is required")
			continue
		}
		if val == "" {
			continue
		}
		if err := checkType(f, val); err != nil {
			report(f.Name, err.Error())
			continue
		}
		if f.MaxWords > 0 && core.CountWords(val) > f.MaxWords {
			report(f.Name, fmt.Sprintf("must not exceed %d words", f.MaxWords))
		}
	}

	for _, r := range c.schema.Ranges {
		start, err1 := core.ParseDateTime(c.values[r.Start])
		end, err2 := core.ParseDateTime(c.values[r.End])
		if err1 != nil || err2 != nil {
			continue // empty or malformed dates are reported per-field
		}
		if start.After(end) {
			report(r.End, "must not be before "+r.Start)
		}
	}

	for _, spec := range c.schema.Slots {
		if spec.Required && c.slots[spec.Name].Encode() != staging.EncodeFile && c.slots[spec.Name].Preview() == "" {
			report(spec.Name, "an image is required")
		}
	}

	if len(flds) == 0 {
		return nil
	}
	err := core.NewValidationError(errors.New("the form has invalid fields"), flds...)
	vErr := err.(*core.ValidationError)
	c.fieldErrs = vErr.FieldMap()
	c.formErr = vErr.Error()
	return err
}

// payload converts form state into typed values plus slot encodings.
func (c *Controller) payload() Payload {
	p := Payload{Fields: make(map[string]interface{}, len(c.values))}
	for _, f := range c.schema.Fields {
		val := core.CleanString(c.values[f.Name])
		if val == "" && !f.Required {
			if f.Type == Bool {
				p.Fields[f.Name] = false
			}
			continue
		}
		switch f.Type {
		case Number:
			n, _ := strconv.ParseFloat(val, 64)
			p.Fields[f.Name] = n
		case Bool:
			b, _ := strconv.ParseBool(val)
			p.Fields[f.Name] = b
		case DateTime:
			t, _ := core.ParseDateTime(val)
			p.Fields[f.Name] = core.FormatDateTime(t)
		default:
			p.Fields[f.Name] = val
		}
	}
	for _, spec := range c.schema.Slots {
		sl := c.slots[spec.Name]
		switch sl.Encode() {
		case staging.EncodeFile:
			p.Files = append(p.Files, restapi.FormFile{Field: spec.Name, File: sl.File()})
		case staging.EncodeDelete:
			p.Clears = append(p.Clears, spec.Name)
		}
	}
	return p
}

func checkType(f Field, val string) error {
	if val == "" {
		return nil
	}
	switch f.Type {
	case Number:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return errors.Errorf("%s: not a number", f.Name)
		}
		if n < 0 {
			return errors.Errorf("%s: must not be negative", f.Name)
		}
	case Bool:
		if _, err := strconv.ParseBool(val); err != nil {
			return errors.Errorf("%s: not a boolean", f.Name)
		}
	case DateTime:
		if _, err := core.ParseDateTime(val); err != nil {
			return errors.Errorf("%s: invalid date/time", f.Name)
		}
	}
	return nil
}

// errMessage surfaces the backend's own words when it sent any.
func errMessage(err error) string {
	if aErr, ok := restapi.AsAPIError(err); ok {
		return aErr.Error()
	}
	return err.Error()
}
