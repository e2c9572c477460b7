package order

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/core"
	"github.com/tlwa/courseadmin/resource"
	"github.com/tlwa/courseadmin/restapi"
)

type (
	// Order is a course order; course ids, member types and the raw member
	// input arrive serialized from the checkout flow and are edited as-is.
	Order struct {
		ID             int         `json:"id"`
		UserID         int         `json:"user_id"`
		UserName       string      `json:"user_name"`
		CourseIDs      string      `json:"course_ids"`
		MemberTypes    string      `json:"member_types"`
		MemberInput    string      `json:"member_input"`
		TotalPrice     float64     `json:"total_price"`
		TotalDiscount  float64     `json:"total_discount"`
		PaymentMethod  string      `json:"payment_method"`
		PaymentSlipURL null.String `json:"payment_slip_url"`
		CreatedAt      null.String `json:"created_at"`
	}

	OrderInput struct {
		UserID        int     `json:"user_id" validate:"required"`
		UserName      string  `json:"user_name" validate:"required"`
		CourseIDs     string  `json:"course_ids"`
		MemberTypes   string  `json:"member_types"`
		MemberInput   string  `json:"member_input"`
		TotalPrice    float64 `json:"total_price" validate:"min=0"`
		TotalDiscount float64 `json:"total_discount" validate:"min=0"`
		PaymentMethod string  `json:"payment_method" validate:"required"`
	}

	Service struct {
		c *restapi.Client
	}
)

func (oi *OrderInput) Validate() error {
	oi.UserName = core.CleanString(oi.UserName)
	oi.PaymentMethod = core.CleanString(oi.PaymentMethod)
	return core.Validate.Struct(oi)
}

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

func (svc *Service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := svc.c.Get(ctx, "/api/course_orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (svc *Service) Create(ctx context.Context, oi OrderInput) error {
	if err := oi.Validate(); err != nil {
		return err
	}
	return svc.c.Post(ctx, "/api/course_orders", oi, nil)
}

func (svc *Service) Update(ctx context.Context, id int, oi OrderInput) error {
	if err := oi.Validate(); err != nil {
		return err
	}
	return svc.c.Put(ctx, fmt.Sprintf("/api/course_orders/%d", id), oi, nil)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/course_orders/%d", id))
}

// FormSchema declares the order screen for the shared engine.
func FormSchema() resource.Schema {
	return resource.Schema{
		Name: "course_orders",
		Path: "/api/course_orders",
		Fields: []resource.Field{
			{Name: "user_id", Type: resource.Number, Required: true},
			{Name: "user_name", Type: resource.Text, Required: true},
			{Name: "course_ids", Type: resource.Text},
			{Name: "member_types", Type: resource.Text},
			{Name: "member_input", Type: resource.Text},
			{Name: "total_price", Type: resource.Number, Required: true},
			{Name: "total_discount", Type: resource.Number},
			{Name: "payment_method", Type: resource.Text, Required: true},
		},
		SearchFields: []string{"id", "user_name", "payment_method"},
	}
}
