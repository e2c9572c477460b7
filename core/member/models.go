package member

import (
	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/core"
)

type (
	// User is a platform account as the admin screens see it.
	User struct {
		ID          int         `json:"id"`
		Prefix      string      `json:"prefix"`
		FirstName   string      `json:"firstName"`
		LastName    string      `json:"lastName"`
		FirstNameEn null.String `json:"firstNameEn"`
		LastNameEn  null.String `json:"lastNameEn"`
		Email       string      `json:"email"`
		Phone       null.String `json:"phone"`
		Address     null.String `json:"address"`
		HasMember   bool        `json:"hasMember"`
	}

	// Member is the optional member profile attached to a user:
	// organizational, receipt/tax and payment fields.
	Member struct {
		ID                  int         `json:"id"`
		UserID              int         `json:"user_id"`
		PrefixTh            null.String `json:"prefixTh"`
		PrefixEn            null.String `json:"prefixEn"`
		SuffixEn            null.String `json:"suffixEn"`
		NickName            null.String `json:"nickName"`
		Nationality         null.String `json:"nationality"`
		Occupation          null.String `json:"occupation"`
		LineID              null.String `json:"lineId"`
		WorkPlace           null.String `json:"workPlace"`
		WorkAddress         null.String `json:"workAddress"`
		WorkPhone           null.String `json:"workPhone"`
		WorkPosition        null.String `json:"workPosition"`
		BranchName          null.String `json:"branchName"`
		ReceiptType         null.String `json:"receiptType"`
		ReceiptAddressType  null.String `json:"receiptAddressType"`
		ReceiptAddressOther null.String `json:"receiptAddressOther"`
		TaxID               null.String `json:"taxId"`
		PaymentStatus       null.String `json:"payment_status"`
		PaymentGateway      null.String `json:"payment_gateway"`
		PaymentRef          null.String `json:"payment_ref"`
		PaymentSlipURL      null.String `json:"payment_slip_url"`
	}

	// UserPage is the backend's paginated envelope for users.
	UserPage struct {
		Rows  []User `json:"rows"`
		Total int    `json:"total"`
	}

	MemberPage struct {
		Rows  []Member `json:"rows"`
		Total int      `json:"total"`
	}
)

// UserInput is what the user edit modal submits.
type UserInput struct {
	Prefix      string `json:"prefix"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	FirstNameEn string `json:"firstNameEn"`
	LastNameEn  string `json:"lastNameEn"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

func (ui *UserInput) Validate() error {
	ui.FirstName = core.CleanString(ui.FirstName)
	ui.LastName = core.CleanString(ui.LastName)
	ui.Email = core.CleanString(ui.Email, true /* lower */)
	return core.Validate.Struct(ui)
}

// MemberInput is what the member edit modal submits; everything optional.
type MemberInput struct {
	PrefixTh            string `json:"prefixTh"`
	PrefixEn            string `json:"prefixEn"`
	SuffixEn            string `json:"suffixEn"`
	NickName            string `json:"nickName"`
	Nationality         string `json:"nationality"`
	Occupation          string `json:"occupation"`
	LineID              string `json:"lineId"`
	WorkPlace           string `json:"workPlace"`
	WorkAddress         string `json:"workAddress"`
	WorkPhone           string `json:"workPhone"`
	WorkPosition        string `json:"workPosition"`
	BranchName          string `json:"branchName"`
	ReceiptType         string `json:"receiptType"`
	ReceiptAddressType  string `json:"receiptAddressType"`
	ReceiptAddressOther string `json:"receiptAddressOther"`
	TaxID               string `json:"taxId"`
	PaymentStatus       string `json:"payment_status"`
	PaymentGateway      string `json:"payment_gateway"`
	PaymentRef          string `json:"payment_ref"`
	PaymentSlipURL      string `json:"payment_slip_url"`
}

func (mi *MemberInput) Validate() error {
	return core.Validate.Struct(mi)
}
