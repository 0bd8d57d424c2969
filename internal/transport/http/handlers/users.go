package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/account-service/internal/errors"
	"github.com/pribylovaa/account-service/internal/service"
)

// userID достаёт и парсит {id} из пути.
func userID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, service.ErrInvalidArgument
	}

	return id, nil
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.svc.UserByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in updateUserRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	input := service.UpdateUserInput{
		Name:  in.Name,
		Email: in.Email,
	}
	if in.RoleIDs != nil {
		input.RoleIDs = *in.RoleIDs
	}

	user, err := h.svc.UpdateUser(r.Context(), id, input)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) BlockUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in blockRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.BlockUser(r.Context(), id, in.Reason)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

func (h *Handlers) UnblockUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in blockRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	user, err := h.svc.UnblockUser(r.Context(), id, in.Reason)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

func (h *Handlers) ListOperations(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ops, err := h.svc.OperationsByUser(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]operationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, operationFromModel(op))
	}

	writeJSON(w, http.StatusOK, out)
}
