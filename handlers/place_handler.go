package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"places-server/middleware"
	"places-server/models"
	"places-server/services"
	"places-server/utils/errors"
	"places-server/utils/validation"
)

type PlaceHandler struct {
	placeService *services.PlaceService
	fileService  *services.FileService
}

type PlaceResponse struct {
	Place *models.Place `json:"place"`
}

type PlacesResponse struct {
	Places []models.Place `json:"places"`
}

type UpdatePlaceInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

func NewPlaceHandler(placeService *services.PlaceService, fileService *services.FileService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService, fileService: fileService}
}

// CreatePlace expects a multipart form carrying the place fields and an
// "image" file.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, errors.ErrUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	input := services.PlaceInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		Creator:     r.FormValue("creator"),
	}
	if err := validation.Struct(input); err != nil {
		middleware.WriteError(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	defer file.Close()

	imagePath, err := h.fileService.SaveImage(file, header)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	place, err := h.placeService.CreatePlace(r.Context(), callerID, input, imagePath)
	if err != nil {
		// No place record was persisted, so drop the stored image too.
		h.fileService.Remove(imagePath)
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PlaceResponse{Place: place})
}

func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	placeID := mux.Vars(r)["pid"]

	place, err := h.placeService.GetPlace(r.Context(), placeID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PlaceResponse{Place: place})
}

func (h *PlaceHandler) GetPlacesByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["uid"]

	places, err := h.placeService.GetPlacesByCreator(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PlacesResponse{Places: places})
}

func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, errors.ErrUnauthorized)
		return
	}
	placeID := mux.Vars(r)["pid"]

	var input UpdatePlaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if err := validation.Struct(input); err != nil {
		middleware.WriteError(w, err)
		return
	}

	place, err := h.placeService.UpdatePlace(r.Context(), callerID, placeID, input.Title, input.Description)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PlaceResponse{Place: place})
}

func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, errors.ErrUnauthorized)
		return
	}
	placeID := mux.Vars(r)["pid"]

	if err := h.placeService.DeletePlace(r.Context(), callerID, placeID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Deleted place."})
}
