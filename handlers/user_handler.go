package handlers

import (
	"encoding/json"
	"net/http"

	"places-server/middleware"
	"places-server/models"
	"places-server/services"
)

type UserHandler struct {
	userService *services.UserService
}

type UsersResponse struct {
	Users []models.User `json:"users"`
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetUsers(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UsersResponse{Users: users})
}
