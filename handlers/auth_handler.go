package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"places-server/middleware"
	"places-server/services"
	"places-server/utils/errors"
	"places-server/utils/validation"
)

const maxUploadMemory = 1 << 20

type AuthHandler struct {
	userService *services.UserService
	fileService *services.FileService
}

func NewAuthHandler(userService *services.UserService, fileService *services.FileService) *AuthHandler {
	return &AuthHandler{userService: userService, fileService: fileService}
}

type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup accepts either JSON or a multipart form with an optional profile
// image under the "image" field.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input SignupInput
	imagePath := ""

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			middleware.WriteError(w, errors.ErrInvalidInput)
			return
		}
		input = SignupInput{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			path, err := h.fileService.SaveImage(file, header)
			if err != nil {
				middleware.WriteError(w, err)
				return
			}
			imagePath = path
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			middleware.WriteError(w, errors.ErrInvalidInput)
			return
		}
	}

	if err := validation.Struct(input); err != nil {
		middleware.WriteError(w, err)
		return
	}

	resp, err := h.userService.Signup(r.Context(), input.Name, input.Email, input.Password, imagePath)
	if err != nil {
		// A signup that stored an image but failed afterwards must not
		// leave the file behind.
		h.fileService.Remove(imagePath)
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if err := validation.Struct(input); err != nil {
		middleware.WriteError(w, err)
		return
	}

	resp, err := h.userService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
