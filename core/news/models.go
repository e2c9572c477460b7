package news

import (
	"github.com/volatiletech/null/v8"

	"github.com/tlwa/courseadmin/core"
)

// News types
const (
	TypeNews    = "news"
	TypeArticle = "article"
	TypeLMWeek  = "lmweek" // weekly feature
)

// Languages
const (
	LangThai    = "th"
	LangEnglish = "en"
)

type (
	// News is one news/article entry; the title lives in the column of its
	// language, the other stays empty.
	News struct {
		ID            int    `json:"id"`
		NewsType      string `json:"news_type"`
		Lang          string `json:"lang"`
		TitleTH       string `json:"title_th"`
		TitleEN       string `json:"title_en"`
		CoverImageURL string `json:"cover_image_url"`
	}

	// Author of a news detail; the image is uploaded first, only its URL is
	// stored here.
	Author struct {
		Name     string      `json:"author_name"`
		ImageURL null.String `json:"author_image_url"`
	}

	// NewsDetail is the body of a news entry: caption, authors and a gallery.
	NewsDetail struct {
		ID      int      `json:"id"`
		NewsID  int      `json:"news_id"`
		Caption string   `json:"caption"`
		Authors []Author `json:"authors"`
		Images  []string `json:"images"`
	}

	// GalleryImage is one persisted gallery row of a news detail.
	GalleryImage struct {
		ID           int    `json:"id"`
		NewsDetailID int    `json:"news_detail_id"`
		URL          string `json:"url"`
	}
)

type NewsInput struct {
	NewsType      string `json:"news_type" validate:"required,oneof=news article lmweek"`
	Lang          string `json:"lang" validate:"required,oneof=th en"`
	TitleTH       string `json:"title_th"`
	TitleEN       string `json:"title_en"`
	CoverImageURL string `json:"cover_image_url" validate:"required"`
}

// Validate requires the title of the selected language and blanks the other
// one, the way the old form did.
func (ni *NewsInput) Validate() error {
	ni.TitleTH = core.CleanString(ni.TitleTH)
	ni.TitleEN = core.CleanString(ni.TitleEN)

	if err := core.Validate.Struct(ni); err != nil {
		return err
	}
	switch ni.Lang {
	case LangThai:
		if ni.TitleTH == "" {
			return core.NewValidationError(nil,
				core.FieldError{Field: "title_th", Error: "this field is required"})
		}
		ni.TitleEN = ""
	case LangEnglish:
		if ni.TitleEN == "" {
			return core.NewValidationError(nil,
				core.FieldError{Field: "title_en", Error: "this field is required"})
		}
		ni.TitleTH = ""
	}
	return nil
}

type DetailInput struct {
	NewsID  int      `json:"news_id" validate:"required"`
	Caption string   `json:"caption"`
	Authors []Author `json:"authors"`
	Images  []string `json:"images"`
}

func (di *DetailInput) Validate() error {
	for i := range di.Authors {
		di.Authors[i].Name = core.CleanString(di.Authors[i].Name)
		if di.Authors[i].Name == "" {
			return core.NewValidationError(nil,
				core.FieldError{Field: "authors", Error: "author name must not be empty"})
		}
	}
	return core.Validate.Struct(di)
}
