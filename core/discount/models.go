package discount

import (
	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/core"
)

// Member-type classifiers for discount eligibility.
const (
	MemberTypeAssociation = 1 // TLWA association member
	MemberTypePartnerOrg  = 2 // partner organization
	MemberTypeNone        = 3 // neither member nor partner
	MemberTypeCustom      = 4 // free-form label
)

var memberTypeLabels = map[int]string{
	MemberTypeAssociation: "สมาชิกสมาคมเวชศาสตร์วิถีชีวิตและสุขภาวะไทย (TLWA)",
	MemberTypePartnerOrg:  "องค์กรพันธมิตรสมาคมเวชศาสตร์วิถีชีวิตและสุขภาวะไทย (TLWA)",
	MemberTypeNone:        "ไม่ได้เป็นสมาชิกหรือองค์กรพันธมิตรใดเลย",
	MemberTypeCustom:      "ระบุเอง",
}

// MemberTypeLabel returns the display label of a member-type classifier.
func MemberTypeLabel(id int) string {
	return memberTypeLabels[id]
}

type (
	// Item is one discount rule of a course.
	Item struct {
		MemberTypeID    int         `json:"member_type_id" validate:"required,min=1,max=4"`
		CustomName      null.String `json:"custom_name"`
		DiscountAmount  float64     `json:"discount_amount" validate:"min=0"`
		DiscountPercent float64     `json:"discount_percent" validate:"min=0,max=100"`
	}

	// Batch creates several discount rules for one course in a single call.
	Batch struct {
		CourseID int    `json:"course_id" validate:"required"`
		Items    []Item `json:"items" validate:"required,min=1,dive"`
	}
)

func (b *Batch) Validate() error {
	if err := core.Validate.Struct(b); err != nil {
		return err
	}
	for i := range b.Items {
		it := &b.Items[i]
		if it.MemberTypeID == MemberTypeCustom {
			it.CustomName.String = core.CleanString(it.CustomName.String)
			if !it.CustomName.Valid || it.CustomName.String == "" {
				return core.NewValidationError(nil,
					core.FieldError{Field: "custom_name", Error: "a custom member type needs a label"})
			}
		} else {
			// only the custom classifier carries a label
			it.CustomName = null.String{}
		}
	}
	return nil
}
