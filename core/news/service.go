package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tlwa/courseadmin/restapi"
	"github.com/tlwa/courseadmin/staging"
)

type Service struct {
	c *restapi.Client
}

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

func (svc *Service) List(ctx context.Context) ([]News, error) {
	var items []News
	if err := svc.c.Get(ctx, "/api/news", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UploadCover sends the cover through the generic upload endpoint; the news
// record itself only ever stores the hosted URL.
func (svc *Service) UploadCover(ctx context.Context, f staging.File) (string, error) {
	return svc.c.Upload(ctx, f)
}

func (svc *Service) Create(ctx context.Context, ni NewsInput) error {
	if err := ni.Validate(); err != nil {
		return err
	}
	return svc.c.Post(ctx, "/api/news", ni, nil)
}

func (svc *Service) Update(ctx context.Context, id int, ni NewsInput) error {
	if err := ni.Validate(); err != nil {
		return err
	}
	return svc.c.Put(ctx, fmt.Sprintf("/api/news/%d", id), ni, nil)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/news/%d", id))
}

// Details

func (svc *Service) ListDetails(ctx context.Context) ([]NewsDetail, error) {
	var details []NewsDetail
	if err := svc.c.Get(ctx, "/api/news_detail", nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (svc *Service) GetDetail(ctx context.Context, id int) (NewsDetail, error) {
	var detail NewsDetail
	if err := svc.c.Get(ctx, fmt.Sprintf("/api/news_detail/%d", id), nil, &detail); err != nil {
		return NewsDetail{}, err
	}
	return detail, nil
}

// CreateDetail uploads any author images first, then posts the detail with
// hosted URLs only.
func (svc *Service) CreateDetail(ctx context.Context, di DetailInput, authorImages map[int]staging.File) error {
	if err := svc.resolveAuthorImages(ctx, &di, authorImages); err != nil {
		return err
	}
	if err := di.Validate(); err != nil {
		return err
	}
	return svc.c.Post(ctx, "/api/news_detail", di, nil)
}

func (svc *Service) UpdateDetail(ctx context.Context, id int, di DetailInput, authorImages map[int]staging.File) error {
	if err := svc.resolveAuthorImages(ctx, &di, authorImages); err != nil {
		return err
	}
	if err := di.Validate(); err != nil {
		return err
	}
	return svc.c.Put(ctx, fmt.Sprintf("/api/news_detail/%d", id), di, nil)
}

func (svc *Service) DeleteDetail(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/news_detail/%d", id))
}

// resolveAuthorImages replaces staged files (keyed by author index) with
// their uploaded URLs.
func (svc *Service) resolveAuthorImages(ctx context.Context, di *DetailInput, images map[int]staging.File) error {
	for idx, f := range images {
		if idx < 0 || idx >= len(di.Authors) {
			continue
		}
		hosted, err := svc.c.Upload(ctx, f)
		if err != nil {
			return err
		}
		di.Authors[idx].ImageURL.SetValid(hosted)
	}
	return nil
}

// Gallery

func (svc *Service) Gallery(ctx context.Context, detailID int) ([]GalleryImage, error) {
	var imgs []GalleryImage
	if err := svc.c.Get(ctx, fmt.Sprintf("/api/news_detail_images/%d", detailID), nil, &imgs); err != nil {
		return nil, err
	}
	return imgs, nil
}

// AddGalleryImage uploads one gallery file for a news detail, one request
// per image like the old screen.
func (svc *Service) AddGalleryImage(ctx context.Context, detailID int, f staging.File) error {
	fields := make(url.Values)
	fields.Set("news_detail_id", strconv.Itoa(detailID))
	files := []restapi.FormFile{{Field: "file", File: f}}
	return svc.c.SendMultipart(ctx, http.MethodPost, "/api/news_detail_images", fields, files, nil)
}

func (svc *Service) DeleteGalleryImage(ctx context.Context, imageID int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/news_detail_images/%d", imageID))
}
