// Package backendtest is an in-memory stand-in for the PlanPlant REST
// backend. It speaks the same JSON contract as the real service so the
// client can be exercised end to end, keeps everything in maps, stores
// passwords as given and accepts any upload to a URL it signed.
//
// Tests usually start it with NewServer; cmd/server serves it for manual
// runs of the CLI.
package backendtest

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/planplant/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type User struct {
	ID       string
	UserName string
	Email    string
	Password string
	Image    string
	Settings map[string]bool
	HomeName string
}

type Home struct {
	ID       string
	Name     string
	Password string
	Image    string
	Members  []string
}

// Object is an uploaded image.
type Object struct {
	FileName string
	FileType string
	Data     []byte
}

type Backend struct {
	mu sync.Mutex

	version       string
	secret        []byte
	tokenValidity time.Duration
	s3            S3Config
	logger        logging.Logger

	baseURL string
	presign *s3.PresignClient

	users   map[string]*User // by id
	homes   map[string]*Home // by name
	issued  map[string]Object
	objects map[string]Object
	failing map[string]string
	hits    []string
}

type Option func(*Backend)

// WithVersion sets the path prefix of the API routes.
func WithVersion(v string) Option {
	return func(b *Backend) { b.version = strings.Trim(v, "/") }
}

func WithSecret(secret string) Option {
	return func(b *Backend) { b.secret = []byte(secret) }
}

func WithTokenValidity(d time.Duration) Option {
	return func(b *Backend) { b.tokenValidity = d }
}

func WithS3(c S3Config) Option {
	return func(b *Backend) { b.s3 = c }
}

func WithLogger(l logging.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

func New(opts ...Option) *Backend {
	b := &Backend{
		version:       "api_v1",
		secret:        []byte("secretKey"),
		tokenValidity: 24 * time.Hour,
		s3:            DefaultS3Config(),
		logger:        logging.Nop(),
		users:         map[string]*User{},
		homes:         map[string]*Home{},
		issued:        map[string]Object{},
		objects:       map[string]Object{},
		failing:       map[string]string{},
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// SetBaseURL tells the backend where it is reachable. Signed upload URLs
// and image URLs point there.
func (b *Backend) SetBaseURL(ctx context.Context, baseURL string) error {
	baseURL = strings.TrimRight(baseURL, "/")
	pc, err := newPresignClient(ctx, b.s3, baseURL)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.baseURL = baseURL
	b.presign = pc
	return nil
}

// Handler routes the API under /<version>/ and the object store under
// /<bucket>/.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(b.record)

	r.Route("/"+b.version, func(r chi.Router) {
		r.Use(b.forcedFailure)

		r.Post("/aws/getS3URL", b.handleGetS3URL)
		r.Post("/user/register", b.handleRegister)
		r.Post("/user/login", b.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(b.requireToken)
			r.Post("/changeUserName", b.handleChangeUserName)
			r.Post("/changeEmail", b.handleChangeEmail)
			r.Post("/changePassword", b.handleChangePassword)
			r.Post("/changeImage", b.handleChangeImage)
			r.Post("/changeSettings", b.handleChangeSettings)
			r.Post("/deleteAccount", b.handleDeleteAccount)
			r.Post("/createHome", b.handleCreateHome)
			r.Post("/joinHome", b.handleJoinHome)
			r.Post("/leaveHome", b.handleLeaveHome)
		})
	})

	r.Put("/"+b.s3.Bucket+"/*", b.handlePutObject)
	r.Get("/"+b.s3.Bucket+"/*", b.handleGetObject)
	return r
}

// Fail makes every later call to path answer {"error": message}. path is
// relative to the version prefix, e.g. "user/login". An empty message
// clears it.
func (b *Backend) Fail(path, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	path = strings.Trim(path, "/")
	if message == "" {
		delete(b.failing, path)
		return
	}
	b.failing[path] = message
}

// Hits lists "METHOD path" for every request served so far.
func (b *Backend) Hits() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.hits...)
}

// UserByEmail returns a copy of the stored user.
func (b *Backend) UserByEmail(email string) (User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.findByEmail(email)
	if u == nil {
		return User{}, false
	}
	return *u, true
}

func (b *Backend) Home(name string) (Home, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.homes[name]
	if !ok {
		return Home{}, false
	}
	return *h, true
}

// Object returns the upload stored at url.
func (b *Backend) Object(url string) (Object, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key, ok := strings.CutPrefix(url, b.baseURL+"/"+b.s3.Bucket+"/")
	if !ok {
		return Object{}, false
	}
	o, ok := b.objects[key]
	return o, ok
}

// SeedUser stores a user directly and returns its id.
func (b *Backend) SeedUser(u User) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Settings == nil {
		u.Settings = map[string]bool{"vibrate": true}
	}
	b.users[u.ID] = &u
	return u.ID
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits = append(b.hits, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		b.logger.Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) forcedFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/"+b.version+"/")
		b.mu.Lock()
		msg, ok := b.failing[path]
		b.mu.Unlock()
		if ok {
			writeError(w, http.StatusOK, msg)
			return
		}
		next.ServeHTTP(w, r)
	})
}
