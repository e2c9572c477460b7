package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/tlwa/courseadmin/restapi"
	"github.com/tlwa/courseadmin/staging"
)

type apiCall struct {
	op string // list | create | update | remove
	id string
	p  Payload
}

// fakeAPI records calls in order; errors are injected per operation.
type fakeAPI struct {
	rows []Row

	listErr   error
	createErr error
	updateErr error
	removeErr error

	onCreate func() // runs inside Create, before returning

	calls []apiCall
}

func (a *fakeAPI) List(ctx context.Context) ([]Row, error) {
	a.calls = append(a.calls, apiCall{op: "list"})
	if a.listErr != nil {
		return nil, a.listErr
	}
	return a.rows, nil
}

func (a *fakeAPI) Create(ctx context.Context, p Payload) error {
	a.calls = append(a.calls, apiCall{op: "create", p: p})
	if a.onCreate != nil {
		a.onCreate()
	}
	return a.createErr
}

func (a *fakeAPI) Update(ctx context.Context, id string, p Payload) error {
	a.calls = append(a.calls, apiCall{op: "update", id: id, p: p})
	return a.updateErr
}

func (a *fakeAPI) Remove(ctx context.Context, id string) error {
	a.calls = append(a.calls, apiCall{op: "remove", id: id})
	return a.removeErr
}

func (a *fakeAPI) ops() []string {
	ops := make([]string, len(a.calls))
	for i, c := range a.calls {
		ops[i] = c.op
	}
	return ops
}

func testSchema() Schema {
	return Schema{
		Name: "courses",
		Path: "/api/courses",
		Fields: []Field{
			{Name: "title", Type: Text, Required: true},
			{Name: "price", Type: Number},
			{Name: "is_active", Type: Bool, Default: "true"},
			{Name: "registration_start", Type: DateTime},
			{Name: "registration_end", Type: DateTime},
			{Name: "detail", Type: Text, MaxWords: 5},
		},
		Slots: []SlotSpec{
			{Name: "cover_image", Required: true},
			{Name: "bg_image"},
		},
		Ranges:       []DateRange{{Start: "registration_start", End: "registration_end"}},
		SearchFields: []string{"id", "title"},
	}
}

func jpeg(name string) staging.File {
	return staging.NewMemFile(name, "image/jpeg", []byte{0xff, 0xd8, 0xff})
}

func opsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func Test_Controller_LoadKeepsRowsOnFailure(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{rows: []Row{{"id": float64(1), "title": "Intro"}}}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(c.Rows()) != 1 {
		t.Fatalf("Rows() = %d rows, want 1", len(c.Rows()))
	}

	api.listErr = errors.New("backend down")
	if err := c.Load(ctx); err == nil {
		t.Fatal("Load() expected an error")
	}
	if len(c.Rows()) != 1 {
		t.Errorf("Rows() = %d rows after failed load, want the prior 1", len(c.Rows()))
	}
	if c.LoadErr() == "" {
		t.Error("LoadErr() must surface the transient error")
	}

	// a manual retry clears the annotation
	api.listErr = nil
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load() retry failed: %v", err)
	}
	if c.LoadErr() != "" {
		t.Errorf("LoadErr() = %q, want empty after successful retry", c.LoadErr())
	}
}

func Test_Controller_SubmitRequiresForm(t *testing.T) {
	c := NewController(testSchema(), &fakeAPI{}, nil)
	defer c.Close()

	if err := c.Submit(context.Background()); err != ErrNotEditing {
		t.Errorf("Submit() error = %v, want ErrNotEditing", err)
	}
}

func Test_Controller_invalidFormIssuesNoRequest(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartCreate()
	// title missing, cover missing
	if err := c.Submit(ctx); err == nil {
		t.Fatal("Submit() expected a validation error")
	}
	if len(api.calls) != 0 {
		t.Errorf("api calls = %v, want none for an invalid form", api.ops())
	}
	if c.State() != StateCreating {
		t.Errorf("State() = %v, want creating (form preserved for correction)", c.State())
	}
	if c.FieldErr("title") == "" {
		t.Error("missing required field must be annotated")
	}
	if c.FieldErr("cover_image") != "an image is required" {
		t.Errorf("FieldErr(cover_image) = %q, want the image requirement", c.FieldErr("cover_image"))
	}
}

func Test_Controller_createReloadsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartCreate()
	if err := c.SetField("title", "Intro to Lifestyle Medicine"); err != nil {
		t.Fatalf("SetField() failed: %v", err)
	}
	if err := c.StageFile("cover_image", jpeg("cover.jpg")); err != nil {
		t.Fatalf("StageFile() failed: %v", err)
	}

	if err := c.Submit(ctx); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if want := []string{"create", "list"}; !opsEqual(api.ops(), want) {
		t.Errorf("api calls = %v, want %v (reload only after the mutation)", api.ops(), want)
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v, want idle", c.State())
	}
	if c.Value("title") != "" {
		t.Error("form must reset after a successful submit")
	}
	if c.Slot("cover_image").Encode() != staging.EncodeOmit {
		t.Error("staged file must be discarded after a successful submit")
	}
}

func Test_Controller_submitFailurePreservesForm(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{createErr: &restapi.APIError{StatusCode: 422, Message: "title already exists"}}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartCreate()
	_ = c.SetField("title", "Intro")
	_ = c.StageFile("cover_image", jpeg("cover.jpg"))

	if err := c.Submit(ctx); err == nil {
		t.Fatal("Submit() expected the backend error")
	}
	if c.State() != StateCreating {
		t.Errorf("State() = %v, want creating", c.State())
	}
	if c.Value("title") != "Intro" {
		t.Error("form values must survive a failed submit")
	}
	if c.FormErr() != "title already exists" {
		t.Errorf("FormErr() = %q, want the backend message verbatim", c.FormErr())
	}
	if want := []string{"create"}; !opsEqual(api.ops(), want) {
		t.Errorf("api calls = %v, want %v (no reload on failure)", api.ops(), want)
	}
}

func Test_Controller_submitWhileSubmittingIsNoop(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartCreate()
	_ = c.SetField("title", "Intro")
	_ = c.StageFile("cover_image", jpeg("cover.jpg"))

	var reentrant error
	api.onCreate = func() {
		// a second trigger while the first is in flight
		reentrant = c.Submit(ctx)
	}
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if reentrant != nil {
		t.Errorf("re-entrant Submit() = %v, want nil (silent no-op)", reentrant)
	}
	if want := []string{"create", "list"}; !opsEqual(api.ops(), want) {
		t.Errorf("api calls = %v, want a single create", api.ops())
	}
}

func Test_Controller_editFlow(t *testing.T) {
	ctx := context.Background()
	row := Row{
		"id":          float64(7),
		"title":       "Sleep Workshop",
		"price":       float64(1500),
		"is_active":   true,
		"cover_image": "https://cdn.test/7/cover.jpg",
	}
	api := &fakeAPI{rows: []Row{row}}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartEdit(row)
	if c.State() != StateEditing || c.EditingID() != "7" {
		t.Fatalf("State()/EditingID() = %v/%q, want editing/7", c.State(), c.EditingID())
	}
	if c.Value("title") != "Sleep Workshop" {
		t.Errorf("Value(title) = %q", c.Value("title"))
	}
	if c.Value("price") != "1500" {
		t.Errorf("Value(price) = %q, want 1500", c.Value("price"))
	}
	if got := c.Slot("cover_image").Preview(); got != "https://cdn.test/7/cover.jpg" {
		t.Errorf("cover preview = %q, want the server URL", got)
	}

	// the untouched existing image satisfies the required slot and is omitted
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if want := []string{"update", "list"}; !opsEqual(api.ops(), want) {
		t.Fatalf("api calls = %v, want %v", api.ops(), want)
	}
	up := api.calls[0]
	if up.id != "7" {
		t.Errorf("Update id = %q, want 7", up.id)
	}
	if len(up.p.Files) != 0 || len(up.p.Clears) != 0 {
		t.Errorf("payload Files/Clears = %v/%v, want none for an untouched image", up.p.Files, up.p.Clears)
	}
	if up.p.Fields["price"] != float64(1500) {
		t.Errorf("payload price = %v (%T), want float64 1500", up.p.Fields["price"], up.p.Fields["price"])
	}
	if up.p.Fields["is_active"] != true {
		t.Errorf("payload is_active = %v, want true", up.p.Fields["is_active"])
	}
}

func Test_Controller_clearedImageSendsDeleteMarker(t *testing.T) {
	ctx := context.Background()
	row := Row{
		"id":          float64(7),
		"title":       "Sleep Workshop",
		"cover_image": "https://cdn.test/7/cover.jpg",
		"bg_image":    "https://cdn.test/7/bg.jpg",
	}
	api := &fakeAPI{}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartEdit(row)
	c.ClearImage("bg_image")
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	up := api.calls[0]
	if len(up.p.Clears) != 1 || up.p.Clears[0] != "bg_image" {
		t.Errorf("payload Clears = %v, want [bg_image]", up.p.Clears)
	}
}

func Test_Controller_clearedRequiredImageFailsValidation(t *testing.T) {
	ctx := context.Background()
	row := Row{
		"id":          float64(7),
		"title":       "Sleep Workshop",
		"cover_image": "https://cdn.test/7/cover.jpg",
	}
	api := &fakeAPI{}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartEdit(row)
	c.ClearImage("cover_image")
	if err := c.Submit(ctx); err == nil {
		t.Fatal("Submit() expected a validation error")
	}
	if len(api.calls) != 0 {
		t.Errorf("api calls = %v, want none", api.ops())
	}
}

func Test_Controller_rejectedFileKeepsPrevious(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartCreate()
	good := jpeg("good.jpg")
	if err := c.StageFile("cover_image", good); err != nil {
		t.Fatalf("StageFile() failed: %v", err)
	}
	err := c.StageFile("cover_image", staging.NewMemFile("evil.pdf", "application/pdf", []byte("%PDF")))
	if !errors.Is(err, staging.ErrFileType) {
		t.Fatalf("StageFile() error = %v, want ErrFileType", err)
	}
	if c.FieldErr("cover_image") == "" {
		t.Error("rejection must annotate the slot")
	}
	if c.Slot("cover_image").File() != good {
		t.Error("previously staged file must remain")
	}
}

func Test_Controller_fieldTypes(t *testing.T) {
	c := NewController(testSchema(), &fakeAPI{}, nil)
	defer c.Close()
	c.StartCreate()

	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{name: "number ok", field: "price", value: "1200.50"},
		{name: "number junk", field: "price", value: "abc", wantErr: true},
		{name: "number negative", field: "price", value: "-5", wantErr: true},
		{name: "bool ok", field: "is_active", value: "false"},
		{name: "bool junk", field: "is_active", value: "maybe", wantErr: true},
		{name: "datetime wire layout", field: "registration_start", value: "2026-09-01 09:00:00"},
		{name: "datetime input layout", field: "registration_start", value: "2026-09-01T09:00"},
		{name: "datetime junk", field: "registration_start", value: "someday", wantErr: true},
		{name: "unknown field", field: "nope", value: "x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetField(tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetField(%s, %q) error = %v, wantErr %v", tt.field, tt.value, err, tt.wantErr)
			}
		})
	}
}

func Test_Controller_dateRangeAndWordCeiling(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	c.StartCreate()
	_ = c.SetField("title", "Intro")
	_ = c.StageFile("cover_image", jpeg("cover.jpg"))
	_ = c.SetField("registration_start", "2026-09-10 09:00:00")
	_ = c.SetField("registration_end", "2026-09-01 09:00:00")
	_ = c.SetField("detail", "one two three four five six")

	if err := c.Submit(ctx); err == nil {
		t.Fatal("Submit() expected a validation error")
	}
	if c.FieldErr("registration_end") == "" {
		t.Error("inverted range must annotate the end field")
	}
	if c.FieldErr("detail") == "" {
		t.Error("word ceiling must annotate the field")
	}
	if len(api.calls) != 0 {
		t.Errorf("api calls = %v, want none", api.ops())
	}
}

func Test_Controller_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("declined confirmation cancels", func(t *testing.T) {
		api := &fakeAPI{}
		c := NewController(testSchema(), api, nil)
		defer c.Close()
		c.Confirm = func(id string) bool { return false }

		if err := c.Remove(ctx, "7"); err != ErrCancelled {
			t.Errorf("Remove() error = %v, want ErrCancelled", err)
		}
		if len(api.calls) != 0 {
			t.Errorf("api calls = %v, want none", api.ops())
		}
	})

	t.Run("removing the row under edit exits edit mode", func(t *testing.T) {
		row := Row{"id": float64(7), "title": "Sleep Workshop", "cover_image": "u"}
		api := &fakeAPI{}
		c := NewController(testSchema(), api, nil)
		defer c.Close()

		c.StartEdit(row)
		if err := c.Remove(ctx, "7"); err != nil {
			t.Fatalf("Remove() failed: %v", err)
		}
		if c.State() != StateIdle {
			t.Errorf("State() = %v, want idle", c.State())
		}
		if want := []string{"remove", "list"}; !opsEqual(api.ops(), want) {
			t.Errorf("api calls = %v, want %v", api.ops(), want)
		}
	})

	t.Run("removing another row keeps the edit", func(t *testing.T) {
		row := Row{"id": float64(7), "title": "Sleep Workshop", "cover_image": "u"}
		api := &fakeAPI{}
		c := NewController(testSchema(), api, nil)
		defer c.Close()

		c.StartEdit(row)
		if err := c.Remove(ctx, "8"); err != nil {
			t.Fatalf("Remove() failed: %v", err)
		}
		if c.State() != StateEditing || c.EditingID() != "7" {
			t.Errorf("State()/EditingID() = %v/%q, want editing/7", c.State(), c.EditingID())
		}
	})
}

func Test_Controller_Filtered(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{rows: []Row{
		{"id": float64(1), "title": "Nutrition"},
		{"id": float64(2), "title": "Sleep"},
	}}
	c := NewController(testSchema(), api, nil)
	defer c.Close()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := c.Filtered("sleep"); len(got) != 1 {
		t.Errorf("Filtered(sleep) = %d rows, want 1", len(got))
	}
	if got := c.Filtered("zzz"); len(got) != 0 {
		t.Errorf("Filtered(zzz) = %d rows, want the empty state", len(got))
	}
}

func Test_Controller_CloseReleasesPreviews(t *testing.T) {
	base := staging.LivePreviews()
	c := NewController(testSchema(), &fakeAPI{}, nil)
	c.StartCreate()
	_ = c.StageFile("cover_image", jpeg("a.jpg"))
	_ = c.StageFile("bg_image", jpeg("b.jpg"))
	c.Close()
	if got := staging.LivePreviews(); got != base {
		t.Errorf("LivePreviews() = %d after Close, want %d", got, base)
	}
}

func Test_Stringify(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{float64(3), "3"},
		{float64(3.5), "3.5"},
		{42, "42"},
		{int64(42), "42"},
		{[]string{"no"}, ""},
	}
	for _, tt := range tests {
		if got := Stringify(tt.in); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
