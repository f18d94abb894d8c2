package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-management-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UpdateBalance(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// List implements UserHandler.
func (u *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	users, err := u.userService.ListUsers(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// UpdateBalance implements UserHandler.
func (u *UserHandlerImpl) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	targetUserID := chi.URLParam(r, "id")
	if targetUserID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req user.UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := u.userService.SetBalance(r.Context(), actor, targetUserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave balance updated", "user_id", targetUserID, "admin_id", actor.ID)
	response.SuccessWithMessage(w, "Leave balance updated successfully", updated)
}
