package course

import (
	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/core"
)

// detail fields carry an advisory word ceiling
const detailMaxWords = 500

type (
	// Course mirrors the backend record; datetime fields are Thai-pinned
	// DATETIME strings exchanged verbatim.
	Course struct {
		ID                int         `json:"id"`
		Title             string      `json:"title"`
		TypeID            int         `json:"type_id"`
		Location          string      `json:"location"`
		Detail            string      `json:"detail"`
		RegistrationStart string      `json:"registration_start"`
		RegistrationEnd   string      `json:"registration_end"`
		EventStartAt      null.String `json:"event_start_at"`
		EventEndAt        null.String `json:"event_end_at"`
		CoverImage        null.String `json:"cover_image"`
		BgImage           null.String `json:"bg_image"`
	}

	CourseType struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	// Inventory is the price/stock/active-flag record attached to a course.
	Inventory struct {
		CourseID int          `json:"course_id"`
		Price    null.Float64 `json:"price"`
		Stock    null.Int     `json:"stock"`
		IsActive int          `json:"is_active"` // backend keeps 1/0
	}
)

// CourseInput contains what the course form submits; used for both create
// and update.
type CourseInput struct {
	Title             string `json:"title" validate:"required"`
	TypeID            int    `json:"type_id" validate:"required"`
	Location          string `json:"location"`
	Detail            string `json:"detail"`
	RegistrationStart string `json:"registration_start" validate:"required,datetime_th"`
	RegistrationEnd   string `json:"registration_end" validate:"required,datetime_th"`
	EventStartAt      string `json:"event_start_at" validate:"omitempty,datetime_th"`
	EventEndAt        string `json:"event_end_at" validate:"omitempty,datetime_th"`
}

func (ci *CourseInput) Validate() error {
	ci.Title = core.CleanString(ci.Title)
	ci.Location = core.CleanString(ci.Location)

	if err := core.Validate.Struct(ci); err != nil {
		return err
	}
	if core.CountWords(ci.Detail) > detailMaxWords {
		return core.NewValidationError(nil,
			core.FieldError{Field: "detail", Error: "detail is too long"})
	}
	return checkRange("registration_end", ci.RegistrationStart, ci.RegistrationEnd)
}

// checkRange ensures start <= end; empty values pass (per-field tags catch
// those).
func checkRange(fld, start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	s, err1 := core.ParseDateTime(start)
	e, err2 := core.ParseDateTime(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	if s.After(e) {
		return core.NewValidationError(nil,
			core.FieldError{Field: fld, Error: "must not be before the start"})
	}
	return nil
}

// InventoryInput is the inventory PUT body; empty price/stock mean "do not
// change".
type InventoryInput struct {
	Price    null.Float64 `json:"price"`
	Stock    null.Int     `json:"stock"`
	IsActive int          `json:"is_active" validate:"oneof=0 1"`
}

func (ii InventoryInput) Validate() error {
	if err := core.Validate.Struct(ii); err != nil {
		return err
	}
	if ii.Price.Valid && ii.Price.Float64 < 0 {
		return core.NewValidationError(nil,
			core.FieldError{Field: "price", Error: "must not be negative"})
	}
	if ii.Stock.Valid && ii.Stock.Int < 0 {
		return core.NewValidationError(nil,
			core.FieldError{Field: "stock", Error: "must not be negative"})
	}
	return nil
}
