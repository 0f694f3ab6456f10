package backendtest

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/planplant/internal/server/auth"
	"github.com/google/uuid"
)

// Domain error messages.
const (
	MsgMissingFields     = "Missing fields"
	MsgEmailTaken        = "Email already registered"
	MsgUserNameTaken     = "User name already taken"
	MsgWrongCredentials  = "Incorrect email or password"
	MsgWrongPassword     = "Incorrect password"
	MsgInvalidToken      = "Invalid token"
	MsgNoSuchUser        = "User does not exist"
	MsgHomeExists        = "Home already exists"
	MsgNoSuchHome        = "Home does not exist"
	MsgNotInHome         = "User is not in a home"
	MsgTokenHeaderAbsent = "Missing token"
)

type ctxKey struct{}

func newID() string { return uuid.NewString() }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeSuccess(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"success": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (b *Backend) findByEmail(email string) *User {
	for _, u := range b.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (b *Backend) findByName(name string) *User {
	for _, u := range b.users {
		if u.UserName == name {
			return u
		}
	}
	return nil
}

// requireToken resolves the token header to a user id.
func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := r.Header.Get("token")
		if tok == "" {
			writeError(w, http.StatusUnauthorized, MsgTokenHeaderAbsent)
			return
		}
		id, err := auth.GetUserIDFromToken(tok, b.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// caller returns the token's user when it matches userName. It writes the
// error response and returns nil otherwise. Caller holds mu.
func (b *Backend) caller(w http.ResponseWriter, r *http.Request, userName string) *User {
	id, _ := r.Context().Value(ctxKey{}).(string)
	u, ok := b.users[id]
	if !ok || u.UserName != userName {
		writeError(w, http.StatusOK, MsgNoSuchUser)
		return nil
	}
	return u
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"userName"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Image    string `json:"image"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.UserName == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusOK, MsgMissingFields)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.findByEmail(req.Email) != nil {
		writeError(w, http.StatusOK, MsgEmailTaken)
		return
	}
	if b.findByName(req.UserName) != nil {
		writeError(w, http.StatusOK, MsgUserNameTaken)
		return
	}

	u := &User{
		ID:       newID(),
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
		Settings: map[string]bool{"vibrate": true},
	}
	b.users[u.ID] = u
	writeJSON(w, http.StatusOK, map[string]string{"id": u.ID, "userName": u.UserName})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.findByEmail(req.Email)
	if u == nil || u.Password != req.Password {
		writeError(w, http.StatusOK, MsgWrongCredentials)
		return
	}

	tok, err := auth.GenerateToken(u.ID, b.secret, b.tokenValidity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]any{
		"token":    tok,
		"userName": u.UserName,
		"id":       u.ID,
		"image":    u.Image,
		"settings": u.Settings,
	}
	if u.HomeName != "" {
		resp["homeName"] = u.HomeName
	}
	writeJSON(w, http.StatusOK, resp)
}

type credentialed struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// change runs apply for an authenticated, password-checked request.
func (b *Backend) change(w http.ResponseWriter, r *http.Request, req any, cred func() credentialed, apply func(u *User) string) {
	if !decode(w, r, req) {
		return
	}
	c := cred()

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.caller(w, r, c.UserName)
	if u == nil {
		return
	}
	if u.Password != c.Password {
		writeError(w, http.StatusOK, MsgWrongPassword)
		return
	}
	if msg := apply(u); msg != "" {
		writeError(w, http.StatusOK, msg)
		return
	}
	writeSuccess(w, "Changed")
}

func (b *Backend) handleChangeUserName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		credentialed
		NewUserName string `json:"newUserName"`
	}
	b.change(w, r, &req, func() credentialed { return req.credentialed }, func(u *User) string {
		if req.NewUserName == "" {
			return MsgMissingFields
		}
		if other := b.findByName(req.NewUserName); other != nil && other != u {
			return MsgUserNameTaken
		}
		if h, ok := b.homes[u.HomeName]; ok {
			i := slices.Index(h.Members, u.UserName)
			if i >= 0 {
				h.Members[i] = req.NewUserName
			}
		}
		u.UserName = req.NewUserName
		return ""
	})
}

func (b *Backend) handleChangeEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		credentialed
		Email string `json:"email"`
	}
	b.change(w, r, &req, func() credentialed { return req.credentialed }, func(u *User) string {
		if req.Email == "" {
			return MsgMissingFields
		}
		if other := b.findByEmail(req.Email); other != nil && other != u {
			return MsgEmailTaken
		}
		u.Email = req.Email
		return ""
	})
}

func (b *Backend) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		credentialed
		NewPassword string `json:"newPassword"`
	}
	b.change(w, r, &req, func() credentialed { return req.credentialed }, func(u *User) string {
		if req.NewPassword == "" {
			return MsgMissingFields
		}
		u.Password = req.NewPassword
		return ""
	})
}

func (b *Backend) handleChangeImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		credentialed
		Image string `json:"image"`
	}
	b.change(w, r, &req, func() credentialed { return req.credentialed }, func(u *User) string {
		if req.Image == "" {
			return MsgMissingFields
		}
		u.Image = req.Image
		return ""
	})
}

func (b *Backend) handleChangeSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string          `json:"userName"`
		Settings map[string]bool `json:"settings"`
	}
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.caller(w, r, req.UserName)
	if u == nil {
		return
	}
	if req.Settings == nil {
		writeError(w, http.StatusOK, MsgMissingFields)
		return
	}
	u.Settings = req.Settings
	writeSuccess(w, "Settings changed")
}

func (b *Backend) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req credentialed
	b.change(w, r, &req, func() credentialed { return req }, func(u *User) string {
		b.removeMember(u)
		delete(b.users, u.ID)
		return ""
	})
}

// removeMember takes u out of its home. Caller holds mu.
func (b *Backend) removeMember(u *User) {
	if h, ok := b.homes[u.HomeName]; ok {
		h.Members = slices.DeleteFunc(h.Members, func(m string) bool { return m == u.UserName })
	}
	u.HomeName = ""
}

func (b *Backend) handleCreateHome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HomeName string `json:"homeName"`
		Password string `json:"password"`
		Image    string `json:"image"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.HomeName == "" || req.Password == "" {
		writeError(w, http.StatusOK, MsgMissingFields)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.homes[req.HomeName]; ok {
		writeError(w, http.StatusOK, MsgHomeExists)
		return
	}
	h := &Home{ID: newID(), Name: req.HomeName, Password: req.Password, Image: req.Image}
	b.homes[h.Name] = h
	writeJSON(w, http.StatusOK, map[string]string{"id": h.ID, "homeName": h.Name})
}

func (b *Backend) handleJoinHome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HomeName string `json:"homeName"`
		UserName string `json:"userName"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.caller(w, r, req.UserName)
	if u == nil {
		return
	}
	h, ok := b.homes[req.HomeName]
	if !ok {
		writeError(w, http.StatusOK, MsgNoSuchHome)
		return
	}
	if h.Password != req.Password {
		writeError(w, http.StatusOK, MsgWrongPassword)
		return
	}

	b.removeMember(u)
	h.Members = append(h.Members, u.UserName)
	u.HomeName = h.Name
	writeSuccess(w, "Joined home")
}

func (b *Backend) handleLeaveHome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"userName"`
	}
	if !decode(w, r, &req) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.caller(w, r, req.UserName)
	if u == nil {
		return
	}
	if u.HomeName == "" {
		writeError(w, http.StatusOK, MsgNotInHome)
		return
	}
	b.removeMember(u)
	writeSuccess(w, "Left home")
}
