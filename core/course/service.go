package course

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tlwa/courseadmin/restapi"
	"github.com/tlwa/courseadmin/staging"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	// Files carries the two independent image slots a course has.
	Files struct {
		Cover staging.File
		Bg    staging.File
	}

	Service struct {
		c *restapi.Client
	}

	createResponse struct {
		CourseID int `json:"course_id"`
	}
)

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

func (svc *Service) List(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := svc.c.Get(ctx, "/api/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Course, error) {
	var crs Course
	if err := svc.c.Get(ctx, fmt.Sprintf("/api/courses/%d", id), nil, &crs); err != nil {
		if restapi.IsNotFound(err) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	return crs, nil
}

// Create posts the course as multipart (course mutations always carry at
// least a cover image) and returns the new course id.
func (svc *Service) Create(ctx context.Context, ci CourseInput, files Files) (int, error) {
	if err := ci.Validate(); err != nil {
		return 0, err
	}
	var resp createResponse
	err := svc.c.SendMultipart(ctx, http.MethodPost, "/api/courses", ci.formFields(), formFiles(files), &resp)
	if err != nil {
		return 0, err
	}
	return resp.CourseID, nil
}

// Update puts the course; staged files replace images, clears delete them
// via the explicit empty marker, anything else is left unchanged.
func (svc *Service) Update(ctx context.Context, id int, ci CourseInput, files Files, clears []string) error {
	if err := ci.Validate(); err != nil {
		return err
	}
	fields := ci.formFields()
	for _, slot := range clears {
		fields.Set(slot, "")
	}
	return svc.c.SendMultipart(ctx, http.MethodPut, fmt.Sprintf("/api/courses/%d", id), fields, formFiles(files), nil)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/courses/%d", id))
}

func (svc *Service) Inventory(ctx context.Context, id int) (Inventory, error) {
	var inv Inventory
	if err := svc.c.Get(ctx, fmt.Sprintf("/api/courses/%d/inventory", id), nil, &inv); err != nil {
		return Inventory{}, err
	}
	return inv, nil
}

func (svc *Service) SaveInventory(ctx context.Context, id int, ii InventoryInput) error {
	if err := ii.Validate(); err != nil {
		return err
	}
	return svc.c.Put(ctx, fmt.Sprintf("/api/courses/%d/inventory", id), ii, nil)
}

// CreateWithInventory creates the course and, only when inventory input was
// provided, follows up with the inventory PUT for the new id.
func (svc *Service) CreateWithInventory(ctx context.Context, ci CourseInput, files Files, inv *InventoryInput) (int, error) {
	id, err := svc.Create(ctx, ci, files)
	if err != nil {
		return 0, err
	}
	if inv != nil {
		if err := svc.SaveInventory(ctx, id, *inv); err != nil {
			return id, err
		}
	}
	return id, nil
}

func (svc *Service) Types(ctx context.Context) ([]CourseType, error) {
	var types []CourseType
	if err := svc.c.Get(ctx, "/api/course_types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (svc *Service) CreateType(ctx context.Context, name string) error {
	body := map[string]string{"name": name}
	return svc.c.Post(ctx, "/api/course_types", body, nil)
}

func (ci CourseInput) formFields() url.Values {
	v := make(url.Values)
	v.Set("title", ci.Title)
	v.Set("type_id", strconv.Itoa(ci.TypeID))
	v.Set("location", ci.Location)
	v.Set("detail", ci.Detail)
	v.Set("registration_start", ci.RegistrationStart)
	v.Set("registration_end", ci.RegistrationEnd)
	v.Set("event_start_at", ci.EventStartAt)
	v.Set("event_end_at", ci.EventEndAt)
	return v
}

func formFiles(files Files) []restapi.FormFile {
	var ffs []restapi.FormFile
	if files.Cover != nil {
		ffs = append(ffs, restapi.FormFile{Field: "cover_image", File: files.Cover})
	}
	if files.Bg != nil {
		ffs = append(ffs, restapi.FormFile{Field: "bg_image", File: files.Bg})
	}
	return ffs
}
