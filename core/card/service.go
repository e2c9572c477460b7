package card

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tlwa/courseadmin/resource"
	"github.com/tlwa/courseadmin/restapi"
	"github.com/tlwa/courseadmin/staging"
)

type Service struct {
	c *restapi.Client
}

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

func (svc *Service) List(ctx context.Context) ([]CourseCard, error) {
	var cards []CourseCard
	if err := svc.c.Get(ctx, "/api/courses_card", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (svc *Service) Create(ctx context.Context, ci CardInput, image staging.File) error {
	if err := ci.Validate(); err != nil {
		return err
	}
	return svc.c.SendMultipart(ctx, http.MethodPost, "/api/courses_card", ci.formFields(), cardFiles(image), nil)
}

func (svc *Service) Update(ctx context.Context, id int, ci CardInput, image staging.File, clearImage bool) error {
	if err := ci.Validate(); err != nil {
		return err
	}
	fields := ci.formFields()
	if image == nil && clearImage {
		fields.Set("card_image", "")
	}
	return svc.c.SendMultipart(ctx, http.MethodPut, fmt.Sprintf("/api/courses_card/%d", id), fields, cardFiles(image), nil)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/courses_card/%d", id))
}

func (ci CardInput) formFields() url.Values {
	v := make(url.Values)
	v.Set("course_id", strconv.Itoa(ci.CourseID))
	v.Set("type_id", strconv.Itoa(ci.TypeID))
	v.Set("title", ci.Title)
	v.Set("detail", ci.Detail)
	v.Set("start_date", ci.StartDate)
	v.Set("end_date", ci.EndDate)
	v.Set("registration_start", ci.RegistrationStart)
	v.Set("registration_end", ci.RegistrationEnd)
	v.Set("location", ci.Location)
	v.Set("max_participants", strconv.Itoa(ci.MaxParticipants))
	v.Set("price", strconv.FormatFloat(ci.Price, 'f', -1, 64))
	return v
}

func cardFiles(image staging.File) []restapi.FormFile {
	if image == nil {
		return nil
	}
	return []restapi.FormFile{{Field: "card_image", File: image}}
}

// FormSchema declares the course-card screen for the shared engine.
func FormSchema() resource.Schema {
	return resource.Schema{
		Name: "courses_card",
		Path: "/api/courses_card",
		Fields: []resource.Field{
			{Name: "course_id", Type: resource.Number, Required: true},
			{Name: "type_id", Type: resource.Number, Required: true},
			{Name: "title", Type: resource.Text, Required: true},
			{Name: "detail", Type: resource.Text},
			{Name: "start_date", Type: resource.DateTime},
			{Name: "end_date", Type: resource.DateTime},
			{Name: "registration_start", Type: resource.DateTime},
			{Name: "registration_end", Type: resource.DateTime},
			{Name: "location", Type: resource.Text},
			{Name: "max_participants", Type: resource.Number},
			{Name: "price", Type: resource.Number},
		},
		Slots: []resource.SlotSpec{{Name: "card_image"}},
		Ranges: []resource.DateRange{
			{Start: "start_date", End: "end_date"},
			{Start: "registration_start", End: "registration_end"},
		},
		SearchFields: []string{"id", "title", "location"},
	}
}
