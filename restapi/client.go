package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tlwa/courseadmin/core"
	"github.com/tlwa/courseadmin/staging"
)

type (
	// TokenSource provides the bearer token to attach to requests, if any.
	TokenSource interface {
		Token() string
	}

	Options struct {
		BaseURL string
		Client  *http.Client
		Tokens  TokenSource
		Logger  core.Logger
	}

	// Client talks to the course-platform backend. It never retries: every
	// failure is terminal for that attempt and reported to the caller.
	Client struct {
		base   *url.URL
		http   *http.Client
		tokens TokenSource
		log    core.Logger
	}

	// FormFile binds a staged file to its multipart field name.
	FormFile struct {
		Field string
		File  staging.File
	}
)

func NewClient(opts *Options) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = core.Conf.GetString("apiBaseURL")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "restapi.NewClient(%s)", baseURL)
	}

	httpClient := opts.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: core.Conf.GetDuration("requestTimeout")}
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Client{base: base, http: httpClient, tokens: opts.Tokens, log: logger}, nil
}

// URL resolves an API path (and optional query) against the base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, query), nil)
	if err != nil {
		return errors.Wrap(err, "restapi.Get")
	}
	return c.do(req, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.URL(path, nil), nil)
	if err != nil {
		return errors.Wrap(err, "restapi.Delete")
	}
	return c.do(req, nil)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return errors.Wrapf(err, "restapi.%s(%s): encode", method, path)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, nil), &body)
	if err != nil {
		return errors.Wrapf(err, "restapi.%s(%s)", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// SendMultipart issues a multipart request carrying form fields and staged
// files. Mutations that include a file always go through here.
func (c *Client) SendMultipart(ctx context.Context, method, path string, fields url.Values, files []FormFile, out interface{}) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for name, vals := range fields {
		for _, val := range vals {
			if err := mw.WriteField(name, val); err != nil {
				return errors.Wrap(err, "restapi.SendMultipart: field")
			}
		}
	}
	for _, ff := range files {
		if err := writeFilePart(mw, ff); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return errors.Wrap(err, "restapi.SendMultipart: close")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, nil), &body)
	if err != nil {
		return errors.Wrapf(err, "restapi.SendMultipart(%s %s)", method, path)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}

func writeFilePart(mw *multipart.Writer, ff FormFile) error {
	part, err := mw.CreateFormFile(ff.Field, ff.File.Name())
	if err != nil {
		return errors.Wrapf(err, "restapi.SendMultipart: part %s", ff.Field)
	}
	src, err := ff.File.Open()
	if err != nil {
		return errors.Wrapf(err, "restapi.SendMultipart: open %s", ff.File.Name())
	}
	//goland:noinspection GoUnhandledErrorResult
	defer src.Close()
	if _, err := io.Copy(part, src); err != nil {
		return errors.Wrapf(err, "restapi.SendMultipart: copy %s", ff.File.Name())
	}
	return nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "restapi: %s %s", req.Method, req.URL.Path)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(req, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "restapi: %s %s: decode", req.Method, req.URL.Path)
	}
	return nil
}

// apiError surfaces the backend message verbatim when there is one.
// A 401 is logged but never auto-redirected.
func (c *Client) apiError(req *http.Request, resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("unauthorized (401); please log in again",
			map[string]interface{}{"path": req.URL.Path})
	}

	var body apiErrorBody
	data, _ := ioutil.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
