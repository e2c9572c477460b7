package discount

import (
	"context"

	"github.com/tlwa/courseadmin/restapi"
)

type Service struct {
	c *restapi.Client
}

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

// Create posts a batch of discount rules for one course.
func (svc *Service) Create(ctx context.Context, b Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return svc.c.Post(ctx, "/api/course_discounts", b, nil)
}
