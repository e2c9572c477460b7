package speaker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/core"
	"github.com/tlwa/courseadmin/resource"
	"github.com/tlwa/courseadmin/restapi"
	"github.com/tlwa/courseadmin/staging"
)

type (
	// Speaker presents a course speaker with a profile image and an avatar,
	// two independent image slots.
	Speaker struct {
		ID       int         `json:"id"`
		CourseID int         `json:"course_id"`
		Name     string      `json:"name"`
		Image    null.String `json:"image"`
		Avatar   null.String `json:"avatar"`
	}

	SpeakerInput struct {
		CourseID int    `json:"course_id" validate:"required"`
		Name     string `json:"name" validate:"required"`
	}

	// Files carries the speaker's two image slots.
	Files struct {
		Image  staging.File
		Avatar staging.File
	}

	Service struct {
		c *restapi.Client
	}
)

func (si *SpeakerInput) Validate() error {
	si.Name = core.CleanString(si.Name)
	return core.Validate.Struct(si)
}

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

func (svc *Service) List(ctx context.Context) ([]Speaker, error) {
	var speakers []Speaker
	if err := svc.c.Get(ctx, "/api/course_speakers", nil, &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

// ByCourse lists the speakers attached to one course.
func (svc *Service) ByCourse(ctx context.Context, courseID int) ([]Speaker, error) {
	var speakers []Speaker
	path := fmt.Sprintf("/api/course_speakers/by_course/%d", courseID)
	if err := svc.c.Get(ctx, path, nil, &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

func (svc *Service) Create(ctx context.Context, si SpeakerInput, files Files) error {
	if err := si.Validate(); err != nil {
		return err
	}
	return svc.c.SendMultipart(ctx, http.MethodPost, "/api/course_speakers", si.formFields(), files.form(), nil)
}

func (svc *Service) Update(ctx context.Context, id int, si SpeakerInput, files Files) error {
	if err := si.Validate(); err != nil {
		return err
	}
	return svc.c.SendMultipart(ctx, http.MethodPut, fmt.Sprintf("/api/course_speakers/%d", id), si.formFields(), files.form(), nil)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/course_speakers/%d", id))
}

func (si SpeakerInput) formFields() url.Values {
	v := make(url.Values)
	v.Set("course_id", strconv.Itoa(si.CourseID))
	v.Set("name", si.Name)
	return v
}

// FormSchema declares the speaker screen for the shared engine.
func FormSchema() resource.Schema {
	return resource.Schema{
		Name: "course_speakers",
		Path: "/api/course_speakers",
		Fields: []resource.Field{
			{Name: "course_id", Type: resource.Number, Required: true},
			{Name: "name", Type: resource.Text, Required: true},
		},
		Slots: []resource.SlotSpec{
			{Name: "image"},
			{Name: "avatar"},
		},
		SearchFields: []string{"id", "name"},
	}
}

func (f Files) form() []restapi.FormFile {
	var ffs []restapi.FormFile
	if f.Image != nil {
		ffs = append(ffs, restapi.FormFile{Field: "image", File: f.Image})
	}
	if f.Avatar != nil {
		ffs = append(ffs, restapi.FormFile{Field: "avatar", File: f.Avatar})
	}
	return ffs
}
