package services

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"places-server/models"
	"places-server/repositories"
	"places-server/utils/errors"
)

var (
	errNoPlace    = errors.NewAPIError("PLACE_NOT_FOUND", "Could not find a place for the provided id.", http.StatusNotFound)
	errNoUser     = errors.NewAPIError("USER_NOT_FOUND", "Could not find user for provided id.", http.StatusNotFound)
	errNotCreator = errors.NewAPIError("FORBIDDEN", "You are not allowed to modify this place.", http.StatusUnauthorized)
)

// AddressResolver is the geocoding boundary the place service depends on.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (models.GeoPoint, error)
}

type fileRemover interface {
	Remove(path string)
}

// PlaceInput carries the client-supplied fields of a new place. Coordinates
// are never part of it; they always come from the geocoder.
type PlaceInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
	Address     string `json:"address" validate:"required"`
	Creator     string `json:"creator" validate:"required"`
}

type PlaceService struct {
	places   repositories.PlaceRepository
	users    repositories.UserRepository
	geocoder AddressResolver
	files    fileRemover
}

func NewPlaceService(places repositories.PlaceRepository, users repositories.UserRepository, geocoder AddressResolver, files fileRemover) *PlaceService {
	return &PlaceService{places: places, users: users, geocoder: geocoder, files: files}
}

// CreatePlace geocodes the address and persists the place together with the
// owner's back-reference in one transaction. Callers may only create places
// for themselves.
func (s *PlaceService) CreatePlace(ctx context.Context, callerID string, input PlaceInput, imagePath string) (*models.Place, error) {
	if input.Creator != callerID {
		return nil, errNotCreator
	}

	creatorID, err := primitive.ObjectIDFromHex(input.Creator)
	if err != nil {
		return nil, errNoUser
	}
	if _, err := s.users.FindByID(ctx, creatorID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, errNoUser
		}
		return nil, errors.Wrap(err, "DB_ERROR", "Creating place failed, please try again.", http.StatusInternalServerError)
	}

	location, err := s.geocoder.Resolve(ctx, input.Address)
	if err != nil {
		return nil, err
	}

	place := &models.Place{
		Title:       input.Title,
		Description: input.Description,
		Image:       imagePath,
		Address:     input.Address,
		Location:    location,
		Creator:     creatorID,
	}
	if err := s.places.InsertWithOwner(ctx, place); err != nil {
		if err == repositories.ErrNotFound {
			return nil, errNoUser
		}
		return nil, errors.Wrap(err, "TRANSACTION_ERROR", "Creating place failed, please try again.", http.StatusInternalServerError)
	}
	return place, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, placeID string) (*models.Place, error) {
	id, err := primitive.ObjectIDFromHex(placeID)
	if err != nil {
		return nil, errNoPlace
	}
	place, err := s.places.FindByID(ctx, id)
	if err == repositories.ErrNotFound {
		return nil, errNoPlace
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Something went wrong, could not find a place.", http.StatusInternalServerError)
	}
	return place, nil
}

// GetPlacesByCreator lists a user's places. A user with no places gets an
// empty list; an unknown user gets a not-found error. The two cases stay
// distinguishable.
func (s *PlaceService) GetPlacesByCreator(ctx context.Context, userID string) ([]models.Place, error) {
	creatorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errNoUser
	}
	if _, err := s.users.FindByID(ctx, creatorID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, errNoUser
		}
		return nil, errors.Wrap(err, "DB_ERROR", "Fetching places failed, please try again.", http.StatusInternalServerError)
	}

	places, err := s.places.FindByCreator(ctx, creatorID)
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Fetching places failed, please try again.", http.StatusInternalServerError)
	}
	if places == nil {
		places = []models.Place{}
	}
	return places, nil
}

// UpdatePlace mutates only title and description. Single-document write, no
// transaction needed.
func (s *PlaceService) UpdatePlace(ctx context.Context, callerID, placeID, title, description string) (*models.Place, error) {
	place, err := s.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.Creator.Hex() != callerID {
		return nil, errNotCreator
	}

	place.Title = title
	place.Description = description
	if err := s.places.Update(ctx, place); err != nil {
		if err == repositories.ErrNotFound {
			return nil, errNoPlace
		}
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to update places, please try again.", http.StatusInternalServerError)
	}
	return place, nil
}

// DeletePlace removes the place and the owner's back-reference in one
// transaction, then best-effort deletes the stored image after commit.
func (s *PlaceService) DeletePlace(ctx context.Context, callerID, placeID string) error {
	place, err := s.GetPlace(ctx, placeID)
	if err != nil {
		return err
	}
	if place.Creator.Hex() != callerID {
		return errNotCreator
	}

	if err := s.places.DeleteWithOwner(ctx, place); err != nil {
		if err == repositories.ErrNotFound {
			return errNoPlace
		}
		return errors.Wrap(err, "TRANSACTION_ERROR", "Failed to delete places, please try again.", http.StatusInternalServerError)
	}

	s.files.Remove(place.Image)
	return nil
}
