package services

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"places-server/models"
	"places-server/repositories"
	"places-server/utils/errors"
)

// One opaque error for both unknown email and wrong password, so responses
// cannot be used to enumerate accounts.
var errInvalidCredentials = errors.NewAPIError("INVALID_CREDENTIALS", "Invalid credentials, could not log you in.", http.StatusUnauthorized)

var errUserExists = errors.NewAPIError("USER_EXISTS", "User exists already, please login instead.", http.StatusUnprocessableEntity)

type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type UserService struct {
	users repositories.UserRepository
	auth  *AuthService
}

func NewUserService(users repositories.UserRepository, auth *AuthService) *UserService {
	return &UserService{users: users, auth: auth}
}

// Signup creates a user with a unique, case-normalized email and returns a
// fresh session token. The duplicate check runs twice: a friendly pre-check
// here, and the unique index on email that settles concurrent races.
func (s *UserService) Signup(ctx context.Context, name, email, password, imageURL string) (*AuthResponse, error) {
	email = normalizeEmail(email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, errUserExists
	}
	if err != repositories.ErrNotFound {
		return nil, errors.Wrap(err, "DB_ERROR", "Signing up failed, please try again later.", http.StatusInternalServerError)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ImageURL:     imageURL,
		Places:       []primitive.ObjectID{},
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if err == repositories.ErrDuplicate {
			return nil, errUserExists
		}
		return nil, errors.Wrap(err, "DB_ERROR", "Signing up failed, please try again later.", http.StatusInternalServerError)
	}

	token, err := s.auth.IssueToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{UserID: user.ID.Hex(), Email: user.Email, Token: token}, nil
}

// Login authenticates a user and returns a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err == repositories.ErrNotFound {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Logging in failed, please try again later.", http.StatusInternalServerError)
	}

	if !s.auth.CheckPassword(password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	token, err := s.auth.IssueToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{UserID: user.ID.Hex(), Email: user.Email, Token: token}, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Fetching users failed, please try again later.", http.StatusInternalServerError)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
