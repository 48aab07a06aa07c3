package services

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"places-server/models"
	"places-server/repositories"
)

// fakeUserRepo is an in-memory UserRepository with the same duplicate-email
// behavior as the Mongo unique index.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	failFind bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) Insert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFind {
		return nil, fmt.Errorf("find failed")
	}
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []models.User{}
	for _, u := range r.users {
		copy := *u
		copy.PasswordHash = ""
		users = append(users, copy)
	}
	return users, nil
}

func (r *fakeUserRepo) addUser(email string) *models.User {
	user := &models.User{Name: "Ann", Email: email, Places: []primitive.ObjectID{}}
	_ = r.Insert(context.Background(), user)
	return user
}

// fakePlaceRepo keeps places and owner back-references consistent the way the
// transactional Mongo repository does, and can inject transaction failures.
type fakePlaceRepo struct {
	mu     sync.Mutex
	places map[primitive.ObjectID]*models.Place
	owners *fakeUserRepo

	failTxn bool
}

func newFakePlaceRepo(owners *fakeUserRepo) *fakePlaceRepo {
	return &fakePlaceRepo{places: map[primitive.ObjectID]*models.Place{}, owners: owners}
}

func (r *fakePlaceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.places[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePlaceRepo) FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var places []models.Place
	for _, p := range r.places {
		if p.Creator == creator {
			places = append(places, *p)
		}
	}
	return places, nil
}

func (r *fakePlaceRepo) Update(ctx context.Context, place *models.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.places[place.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Title = place.Title
	stored.Description = place.Description
	return nil
}

func (r *fakePlaceRepo) InsertWithOwner(ctx context.Context, place *models.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTxn {
		return fmt.Errorf("transaction aborted")
	}
	r.owners.mu.Lock()
	defer r.owners.mu.Unlock()
	owner, ok := r.owners.users[place.Creator]
	if !ok {
		return repositories.ErrNotFound
	}
	place.ID = primitive.NewObjectID()
	stored := *place
	r.places[place.ID] = &stored
	owner.Places = append(owner.Places, place.ID)
	return nil
}

func (r *fakePlaceRepo) DeleteWithOwner(ctx context.Context, place *models.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTxn {
		return fmt.Errorf("transaction aborted")
	}
	if _, ok := r.places[place.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.places, place.ID)
	r.owners.mu.Lock()
	defer r.owners.mu.Unlock()
	if owner, ok := r.owners.users[place.Creator]; ok {
		kept := owner.Places[:0]
		for _, id := range owner.Places {
			if id != place.ID {
				kept = append(kept, id)
			}
		}
		owner.Places = kept
	}
	return nil
}

// fakeResolver returns a fixed point or a configured error, counting calls.
type fakeResolver struct {
	point models.GeoPoint
	err   error
	calls int
}

func (r *fakeResolver) Resolve(ctx context.Context, address string) (models.GeoPoint, error) {
	r.calls++
	if r.err != nil {
		return models.GeoPoint{}, r.err
	}
	return r.point, nil
}

// fakeFileRemover records removed paths.
type fakeFileRemover struct {
	removed []string
}

func (f *fakeFileRemover) Remove(path string) {
	f.removed = append(f.removed, path)
}
