package card

import (
	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/core"
)

// CourseCard is the public landing card of a course.
type CourseCard struct {
	ID                int          `json:"id"`
	CourseID          int          `json:"course_id"`
	TypeID            int          `json:"type_id"`
	Title             string       `json:"title"`
	Detail            string       `json:"detail"`
	StartDate         null.String  `json:"start_date"`
	EndDate           null.String  `json:"end_date"`
	RegistrationStart null.String  `json:"registration_start"`
	RegistrationEnd   null.String  `json:"registration_end"`
	Location          string       `json:"location"`
	MaxParticipants   null.Int     `json:"max_participants"`
	Price             null.Float64 `json:"price"`
	CardImage         null.String  `json:"card_image"`
}

type CardInput struct {
	CourseID          int     `json:"course_id" validate:"required"`
	TypeID            int     `json:"type_id" validate:"required"`
	Title             string  `json:"title" validate:"required"`
	Detail            string  `json:"detail"`
	StartDate         string  `json:"start_date" validate:"omitempty,datetime_th"`
	EndDate           string  `json:"end_date" validate:"omitempty,datetime_th"`
	RegistrationStart string  `json:"registration_start" validate:"omitempty,datetime_th"`
	RegistrationEnd   string  `json:"registration_end" validate:"omitempty,datetime_th"`
	Location          string  `json:"location"`
	MaxParticipants   int     `json:"max_participants" validate:"min=0"`
	Price             float64 `json:"price" validate:"min=0"`
}

func (ci *CardInput) Validate() error {
	ci.Title = core.CleanString(ci.Title)
	ci.Location = core.CleanString(ci.Location)
	return core.Validate.Struct(ci)
}
