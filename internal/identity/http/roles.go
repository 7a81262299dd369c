package http

import (
	"io"
	"net/http"

	"github.com/corrida-app/identity/internal/identity/service"
	"github.com/corrida-app/identity/pkg/httpx"
)

// Documents arrive as multipart form files; this caps the in-memory portion.
const maxDocumentUploadBytes = 10 << 20

// AddRoleDriver grants DRIVER to the caller. Requires two multipart files,
// cnh and carDocument.
//
//	@Summary	Become a driver
//	@Tags		roles
//	@Accept		mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		cnh			formData	file	true	"CNH document"
//	@Param		carDocument	formData	file	true	"vehicle document"
//	@Success	204
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/role/driver [post]
func (h *Handler) AddRoleDriver(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Users.Principal.CurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	cnh, err := readFormFile(r, "cnh")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing cnh document")
		return
	}
	carDoc, err := readFormFile(r, "carDocument")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing car document")
		return
	}

	if err := h.Auth.AddRoleDriver(r.Context(), caller, cnh, carDoc); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddRoleInfluencer grants INFLUENCER to the user in the path. Admin-only.
//
//	@Summary	Grant the influencer role
//	@Tags		roles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId	path	string	true	"target user id"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/role/influencer/{userId} [post]
func (h *Handler) AddRoleInfluencer(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := h.Auth.AddRoleInfluencer(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddRoleAdmin grants ADMIN to the user with the CPF in the path. Admin-only.
//
//	@Summary	Grant the admin role
//	@Tags		roles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		cpf	path	string	true	"target user CPF"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Failure	409	{object}	httpx.ErrorResponse
//	@Router		/v1/auth/role/admin/{cpf} [post]
func (h *Handler) AddRoleAdmin(w http.ResponseWriter, r *http.Request) {
	cpf := r.PathValue("cpf")
	if !cpfPattern.MatchString(cpf) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid cpf")
		return
	}

	if err := h.Auth.AddRoleAdmin(r.Context(), cpf); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func readFormFile(r *http.Request, field string) (service.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return service.Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentUploadBytes))
	if err != nil {
		return service.Upload{}, err
	}
	return service.Upload{Filename: header.Filename, Data: data}, nil
}
