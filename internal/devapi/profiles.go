package devapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/common"
	"github.com/dmitrijs2005/constructhub/internal/devapi/auth"
	"github.com/dmitrijs2005/constructhub/internal/devapi/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in models.Registration
	if err := decodeStrict(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	errs := fieldErrors{}
	errs.required("username", in.Username)
	errs.required("email", in.Email)
	errs.required("password", in.Password)
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		errs.add("email", "Enter a valid email address.")
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	u, err := h.store.CreateUser(in.Username, in.Email, hash)
	if errors.Is(err, common.ErrorAlreadyExists) {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"email": {"A user with that username or email already exists."}})
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, u.Profile())
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}

	errs := fieldErrors{}
	errs.required("email", in.Email)
	errs.required("password", in.Password)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	u, err := h.store.UserByEmail(strings.TrimSpace(in.Email))
	if err != nil || !auth.CheckPassword(u.PasswordHash, in.Password) {
		writeDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	session, err := h.issueSession(u)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handlers) issueSession(u store.User) (*models.Session, error) {
	access, err := auth.GenerateToken(u.ID, auth.KindAccess, h.secret, h.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateToken(u.ID, auth.KindRefresh, h.secret, h.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		Access:   access,
		Refresh:  refresh,
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is not rotated.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}
	if in.Refresh == "" {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"refresh": {"This field is required."}})
		return
	}

	userID, err := auth.GetUserIDFromToken(in.Refresh, auth.KindRefresh, h.secret)
	if err == nil {
		_, err = h.store.User(userID)
	}
	if err != nil {
		h.logger.Info(r.Context(), "refresh rejected", "error", err)
		writeJSON(w, http.StatusUnauthorized, apiError{Detail: "Token is invalid or expired", Code: "token_not_valid"})
		return
	}

	access, err := auth.GenerateToken(userID, auth.KindAccess, h.secret, h.accessTTL)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Access: access})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.User(userIDFrom(r.Context()))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, u.Profile())
}

// UpdateMe accepts a multipart form with optional username, email and
// profile_picture parts.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeDetail(w, http.StatusBadRequest, "Multipart form parse error")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	if email != "" && !strings.Contains(email, "@") {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"email": {"Enter a valid email address."}})
		return
	}

	picture, err := h.saveUpload(r, "profile_picture", "profiles")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"profile_picture": {"Upload a valid image."}})
		return
	}

	u, err := h.store.UpdateUser(userIDFrom(r.Context()), username, email, picture)
	if errors.Is(err, common.ErrorAlreadyExists) {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"username": {"A user with that username or email already exists."}})
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Profile())
}
