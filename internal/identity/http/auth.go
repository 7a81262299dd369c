package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/corrida-app/identity/internal/identity/service"
	"github.com/corrida-app/identity/pkg/httpx"
)

// Login authenticates a user by CPF and password.
//
//	@Summary	Authenticate with CPF and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		object	true	"cpf and password"
//	@Success	200		{object}	service.LoginResult
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Router		/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.Auth.Login(r.Context(), req.CPF, req.Password)
	if err != nil {
		writeLoginError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

// RegisterPassenger creates a passenger account.
//
//	@Summary	Register a passenger
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	service.UserSummary
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/register [post]
func (h *Handler) RegisterPassenger(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Auth.RegisterPassenger)
}

// RegisterDriver creates a driver account pending approval.
//
//	@Summary	Register a driver (pending approval)
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	service.UserSummary
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/register/driver [post]
func (h *Handler) RegisterDriver(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Auth.RegisterDriver)
}

// RegisterInfluencer creates an influencer account.
//
//	@Summary	Register an influencer
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	service.UserSummary
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/register/influencer [post]
func (h *Handler) RegisterInfluencer(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Auth.RegisterInfluencer)
}

// RegisterAdmin creates an admin account. Admin-only.
//
//	@Summary	Register an admin
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Success	201	{object}	service.UserSummary
//	@Failure	403	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/register/admin [post]
func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Auth.RegisterAdmin)
}

type registerFn func(ctx context.Context, req service.RegisterRequest) (service.UserSummary, error)

func (h *Handler) register(w http.ResponseWriter, r *http.Request, fn registerFn) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	summary, err := fn(r.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, summary)
}
