package course

import "github.com/tlwa/courseadmin/resource"

// FormSchema declares the course screen for the shared list/form engine.
func FormSchema() resource.Schema {
	return resource.Schema{
		Name: "courses",
		Path: "/api/courses",
		Fields: []resource.Field{
			{Name: "title", Type: resource.Text, Required: true},
			{Name: "type_id", Type: resource.Number, Required: true},
			{Name: "location", Type: resource.Text},
			{Name: "detail", Type: resource.Text, MaxWords: detailMaxWords},
			{Name: "registration_start", Type: resource.DateTime, Required: true},
			{Name: "registration_end", Type: resource.DateTime, Required: true},
			{Name: "event_start_at", Type: resource.DateTime},
			{Name: "event_end_at", Type: resource.DateTime},
		},
		Slots: []resource.SlotSpec{
			{Name: "cover_image", Required: true},
			{Name: "bg_image"},
		},
		Ranges: []resource.DateRange{
			{Start: "registration_start", End: "registration_end"},
			{Start: "event_start_at", End: "event_end_at"},
		},
		SearchFields: []string{"id", "title", "location"},
	}
}
