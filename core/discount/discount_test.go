package discount

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/restapi"
)

func Test_Batch_Validate(t *testing.T) {
	item := func(typeID int, custom string) Item {
		it := Item{MemberTypeID: typeID, DiscountPercent: 10}
		if custom != "" {
			it.CustomName = null.StringFrom(custom)
		}
		return it
	}

	tests := []struct {
		name    string
		batch   Batch
		wantErr bool
	}{
		{name: "association rule", batch: Batch{CourseID: 1, Items: []Item{item(MemberTypeAssociation, "")}}},
		{name: "custom with label", batch: Batch{CourseID: 1, Items: []Item{item(MemberTypeCustom, "หน่วยงานรัฐ")}}},
		{name: "custom without label", batch: Batch{CourseID: 1, Items: []Item{item(MemberTypeCustom, "")}}, wantErr: true},
		{name: "custom with blank label", batch: Batch{CourseID: 1, Items: []Item{item(MemberTypeCustom, "   ")}}, wantErr: true},
		{name: "no items", batch: Batch{CourseID: 1}, wantErr: true},
		{name: "no course", batch: Batch{Items: []Item{item(MemberTypeNone, "")}}, wantErr: true},
		{name: "unknown classifier", batch: Batch{CourseID: 1, Items: []Item{item(9, "")}}, wantErr: true},
		{
			name:    "percent over 100",
			batch:   Batch{CourseID: 1, Items: []Item{{MemberTypeID: MemberTypeNone, DiscountPercent: 150}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.batch.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_Batch_Validate_blanksNonCustomLabels(t *testing.T) {
	b := Batch{CourseID: 1, Items: []Item{
		{MemberTypeID: MemberTypeAssociation, CustomName: null.StringFrom("leftover")},
	}}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if b.Items[0].CustomName.Valid {
		t.Error("a non-custom classifier must not carry a label")
	}
}

func Test_Service_Create(t *testing.T) {
	e := echo.New()
	var got map[string]interface{}
	e.POST("/api/course_discounts", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	client, err := restapi.NewClient(&restapi.Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	svc := NewService(client)

	b := Batch{CourseID: 7, Items: []Item{
		{MemberTypeID: MemberTypeAssociation, DiscountAmount: 500},
		{MemberTypeID: MemberTypeCustom, CustomName: null.StringFrom("หน่วยงานรัฐ"), DiscountPercent: 20},
	}}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	assert.Equal(t, float64(7), got["course_id"])
	items, ok := got["items"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("items = %v, want 2 rules", got["items"])
	}
	first := items[0].(map[string]interface{})
	assert.Equal(t, float64(MemberTypeAssociation), first["member_type_id"])
	assert.Nil(t, first["custom_name"])
	second := items[1].(map[string]interface{})
	assert.Equal(t, "หน่วยงานรัฐ", second["custom_name"])
}

func Test_MemberTypeLabel(t *testing.T) {
	if MemberTypeLabel(MemberTypeCustom) != "ระบุเอง" {
		t.Errorf("MemberTypeLabel(custom) = %q", MemberTypeLabel(MemberTypeCustom))
	}
	if MemberTypeLabel(99) != "" {
		t.Errorf("MemberTypeLabel(99) = %q, want empty", MemberTypeLabel(99))
	}
}
