package video

import (
	"context"
	"fmt"

	"github.com/tlwa/courseadmin/core"
	"github.com/tlwa/courseadmin/resource"
	"github.com/tlwa/courseadmin/restapi"
)

type (
	// Video is an external video link, typically YouTube.
	Video struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		YoutubeURL string `json:"youtube_url"`
	}

	VideoInput struct {
		Title      string `json:"title" validate:"required"`
		YoutubeURL string `json:"youtube_url" validate:"required,url"`
	}

	Service struct {
		c *restapi.Client
	}
)

func (vi *VideoInput) Validate() error {
	vi.Title = core.CleanString(vi.Title)
	vi.YoutubeURL = core.CleanString(vi.YoutubeURL)
	return core.Validate.Struct(vi)
}

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

func (svc *Service) List(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := svc.c.Get(ctx, "/api/videos", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (svc *Service) Create(ctx context.Context, vi VideoInput) error {
	if err := vi.Validate(); err != nil {
		return err
	}
	return svc.c.Post(ctx, "/api/videos", vi, nil)
}

func (svc *Service) Update(ctx context.Context, id int, vi VideoInput) error {
	if err := vi.Validate(); err != nil {
		return err
	}
	return svc.c.Put(ctx, fmt.Sprintf("/api/videos/%d", id), vi, nil)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/videos/%d", id))
}

// FormSchema declares the video screen for the shared engine.
func FormSchema() resource.Schema {
	return resource.Schema{
		Name: "videos",
		Path: "/api/videos",
		Fields: []resource.Field{
			{Name: "title", Type: resource.Text, Required: true},
			{Name: "youtube_url", Type: resource.Text, Required: true},
		},
		SearchFields: []string{"id", "title", "youtube_url"},
	}
}
