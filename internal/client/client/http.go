package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/planplant/internal/common"
	"github.com/dmitrijs2005/planplant/internal/logging"
	"github.com/dmitrijs2005/planplant/internal/netx"
	"github.com/tidwall/gjson"
)

const (
	acceptHeader    = "application/json, text/plain, */*"
	jsonContentType = "application/json"
	// ImageContentType is the only upload type the backend signs for.
	ImageContentType = "image/png"
)

// HTTPClient talks to the PlanPlant REST API.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	logger   logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request, upload included. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// NewHTTPClient builds a client for baseURL (e.g. "http://localhost:3100/")
// and API version (e.g. "api_v1").
func NewHTTPClient(baseURL, version string, opts ...Option) *HTTPClient {
	endpoint := strings.TrimRight(baseURL, "/") + "/"
	if v := strings.Trim(version, "/"); v != "" {
		endpoint += v + "/"
	}

	c := &HTTPClient{
		endpoint: endpoint,
		http:     http.DefaultClient,
		logger:   logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the versioned prefix every path is appended to.
func (c *HTTPClient) Endpoint() string { return c.endpoint }

func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

// post sends body to path and returns the parsed response. A backend
// {"error": ...} payload comes back as a Domain *Error.
func (c *HTTPClient) post(ctx context.Context, op, path, token string, body any) (gjson.Result, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return gjson.Result{}, transportError(op, fmt.Errorf("encode request: %w", err))
	}

	url := c.endpoint + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, transportError(op, err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", jsonContentType)
	if token != "" {
		req.Header.Set(common.TokenHeaderName, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "api request failed", "op", op, "error", err)
		return gjson.Result{}, transportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, transportError(op, fmt.Errorf("read response: %w", err))
	}
	c.logger.Debug(ctx, "api request", "op", op, "path", path, "status", resp.StatusCode)

	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, transportError(op, ErrInvalidResponse)
	}

	r := gjson.ParseBytes(raw)
	if e := r.Get("error"); e.Exists() {
		return r, &Error{Op: op, Message: e.String(), Domain: true}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return r, transportError(op, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status))
	}
	return r, nil
}

// postSuccess is post for operations whose only payload is {"success": ...}.
func (c *HTTPClient) postSuccess(ctx context.Context, op, path, token string, body any) error {
	r, err := c.post(ctx, op, path, token, body)
	if err != nil {
		return err
	}
	if !r.Get("success").Exists() {
		return transportError(op, ErrMissingSuccess)
	}
	return nil
}

func (c *HTTPClient) GetUploadURL(ctx context.Context, fileName, fileType string) (UploadTarget, error) {
	r, err := c.post(ctx, OpGetUploadURL, "aws/getS3URL", "", map[string]string{
		"fileName": fileName,
		"fileType": fileType,
	})
	if err != nil {
		return UploadTarget{}, err
	}

	t := UploadTarget{
		SignedRequest: r.Get("signedRequest").String(),
		URL:           r.Get("url").String(),
	}
	if t.SignedRequest == "" || t.URL == "" {
		return UploadTarget{}, transportError(OpGetUploadURL, fmt.Errorf("%w: signedRequest/url", ErrMissingField))
	}
	return t, nil
}

// Upload PUTs raw PNG bytes to a signed destination.
func (c *HTTPClient) Upload(ctx context.Context, signedRequest string, data []byte) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := netx.PutSigned(ctx, c.http, signedRequest, ImageContentType, data); err != nil {
		c.logger.Warn(ctx, "image upload failed", "error", err)
		return transportError(OpUpload, err)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.post(ctx, OpRegister, "user/register", "", req)
	return err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	r, err := c.post(ctx, OpLogin, "user/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResponse{}, err
	}

	out := LoginResponse{
		Token:    r.Get("token").String(),
		UserName: r.Get("userName").String(),
		ID:       r.Get("id").String(),
		Image:    r.Get("image").String(),
	}
	if out.Token == "" {
		return LoginResponse{}, transportError(OpLogin, fmt.Errorf("%w: token", ErrMissingField))
	}

	if s := r.Get("settings"); s.IsObject() {
		out.Settings = map[string]bool{}
		s.ForEach(func(k, v gjson.Result) bool {
			if v.IsBool() {
				out.Settings[k.String()] = v.Bool()
			}
			return true
		})
	}
	if h := r.Get("homeName"); h.Type == gjson.String && h.Str != "" {
		name := h.Str
		out.HomeName = &name
	}
	return out, nil
}

func (c *HTTPClient) ChangeUserName(ctx context.Context, token, userName, password, newUserName string) error {
	return c.postSuccess(ctx, OpChangeUserName, "changeUserName", token, map[string]string{
		"userName":    userName,
		"password":    password,
		"newUserName": newUserName,
	})
}

func (c *HTTPClient) ChangeEmail(ctx context.Context, token, userName, password, email string) error {
	return c.postSuccess(ctx, OpChangeEmail, "changeEmail", token, map[string]string{
		"userName": userName,
		"password": password,
		"email":    email,
	})
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token, userName, password, newPassword string) error {
	return c.postSuccess(ctx, OpChangePassword, "changePassword", token, map[string]string{
		"userName":    userName,
		"password":    password,
		"newPassword": newPassword,
	})
}

func (c *HTTPClient) ChangeImage(ctx context.Context, token, userName, password, imageURL string) error {
	return c.postSuccess(ctx, OpChangeImage, "changeImage", token, map[string]string{
		"userName": userName,
		"password": password,
		"image":    imageURL,
	})
}

func (c *HTTPClient) ChangeSettings(ctx context.Context, token, userName string, settings map[string]bool) error {
	return c.postSuccess(ctx, OpChangeSettings, "changeSettings", token, map[string]any{
		"userName": userName,
		"settings": settings,
	})
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, token, userName, password string) error {
	return c.postSuccess(ctx, OpDeleteAccount, "deleteAccount", token, map[string]string{
		"userName": userName,
		"password": password,
	})
}

func (c *HTTPClient) CreateHome(ctx context.Context, token, homeName, password, imageURL string) error {
	_, err := c.post(ctx, OpCreateHome, "createHome", token, map[string]string{
		"homeName": homeName,
		"password": password,
		"image":    imageURL,
	})
	return err
}

func (c *HTTPClient) JoinHome(ctx context.Context, token, homeName, userName, password string) error {
	return c.postSuccess(ctx, OpJoinHome, "joinHome", token, map[string]string{
		"homeName": homeName,
		"userName": userName,
		"password": password,
	})
}

func (c *HTTPClient) LeaveHome(ctx context.Context, token, userName string) error {
	return c.postSuccess(ctx, OpLeaveHome, "leaveHome", token, map[string]string{
		"userName": userName,
	})
}

var _ Client = (*HTTPClient)(nil)
