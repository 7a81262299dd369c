package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/corrida-app/identity/internal/identity/domain"
	"github.com/corrida-app/identity/pkg/httpx"
)

// userView is the admin listing projection. The password hash never leaves
// the service.
type userView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	CPF         string    `json:"cpf"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Roles       []string  `json:"roles"`
	Status      string    `json:"status"`
	Balance     int64     `json:"balance"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserView(u domain.User) userView {
	return userView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		CPF:         u.CPF,
		PhoneNumber: u.PhoneNumber,
		ImageURL:    u.ImageURL,
		Roles:       u.Roles.Strings(),
		Status:      string(u.Status),
		Balance:     u.Balance,
		CreatedAt:   u.CreatedAt,
	}
}

// Me returns the caller's profile.
//
//	@Summary	Current user profile
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	service.Profile
//	@Router		/v1/users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Users.Me(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile)
}

// UpdateUser updates the caller's name and optionally phone number.
//
//	@Summary	Update the current user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	service.UserSummary
//	@Router		/v1/users/update [post]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	summary, err := h.Users.Update(r.Context(), req.Name, req.PhoneNumber)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}

// AddPhoneNumber sets a phone number on the given user.
//
//	@Summary	Add a phone number to a user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/v1/users/phone [post]
func (h *Handler) AddPhoneNumber(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.Users.AddPhoneNumber(r.Context(), req.UserID, req.PhoneNumber); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate sets the caller's status to ACTIVE.
//
//	@Summary	Activate the current account
//	@Tags		users
//	@Security	BearerAuth
//	@Success	204
//	@Router		/v1/users/status/active [patch]
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusActive)
}

// Block sets the caller's status to BLOCKED.
//
//	@Summary	Block the current account
//	@Tags		users
//	@Security	BearerAuth
//	@Success	204
//	@Router		/v1/users/status/blocked [patch]
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusBlocked)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status domain.Status) {
	if err := h.Users.SetStatus(r.Context(), status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers returns every user. Admin-only.
//
//	@Summary	List all users
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	userView
//	@Router		/v1/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	all, err := h.Users.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	views := make([]userView, len(all))
	for i, u := range all {
		views[i] = toUserView(u)
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}
