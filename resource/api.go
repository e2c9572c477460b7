package resource

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tlwa/courseadmin/restapi"
)

type (
	// Payload is what a submit sends: typed field values, staged files to
	// attach and image slots to delete.
	Payload struct {
		Fields map[string]interface{}
		Files  []restapi.FormFile
		Clears []string // slots whose image must be deleted (explicit empty marker)
	}

	// API is the remote side of a resource; the backend owns the records,
	// we only mirror them.
	API interface {
		List(ctx context.Context) ([]Row, error)
		Create(ctx context.Context, p Payload) error
		Update(ctx context.Context, id string, p Payload) error
		Remove(ctx context.Context, id string) error
	}

	restAPI struct {
		c      *restapi.Client
		schema Schema
	}
)

// NewAPI derives a resource API from the schema's collection path.
func NewAPI(c *restapi.Client, schema Schema) API {
	return &restAPI{c: c, schema: schema}
}

func (a *restAPI) List(ctx context.Context) ([]Row, error) {
	var rows []Row
	if err := a.c.Get(ctx, a.schema.Path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *restAPI) Create(ctx context.Context, p Payload) error {
	return a.send(ctx, http.MethodPost, a.schema.Path, p)
}

func (a *restAPI) Update(ctx context.Context, id string, p Payload) error {
	return a.send(ctx, http.MethodPut, a.schema.Path+"/"+id, p)
}

func (a *restAPI) Remove(ctx context.Context, id string) error {
	return a.c.Delete(ctx, a.schema.Path+"/"+id)
}

// send picks the wire encoding: multipart as soon as a file is attached or
// an image deletion marker must go out, JSON otherwise.
func (a *restAPI) send(ctx context.Context, method, path string, p Payload) error {
	if len(p.Files) == 0 && len(p.Clears) == 0 {
		return a.sendJSON(ctx, method, path, p)
	}

	fields := make(url.Values, len(p.Fields)+len(p.Clears))
	for name, val := range p.Fields {
		fields.Set(name, Stringify(val))
	}
	for _, slot := range p.Clears {
		fields.Set(slot, "") // the explicit empty marker
	}
	return a.c.SendMultipart(ctx, method, path, fields, p.Files, nil)
}

func (a *restAPI) sendJSON(ctx context.Context, method, path string, p Payload) error {
	if method == http.MethodPost {
		return a.c.Post(ctx, path, p.Fields, nil)
	}
	return a.c.Put(ctx, path, p.Fields, nil)
}
