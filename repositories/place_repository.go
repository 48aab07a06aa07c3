package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"places-server/models"
)

type PlaceRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Place, error)
	FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Place, error)
	// Update persists title and description of an existing place.
	Update(ctx context.Context, place *models.Place) error
	// InsertWithOwner stores the place and appends its id to the owner's
	// places list inside one transaction. Fills in the generated ID.
	// Returns ErrNotFound if the owner document does not exist.
	InsertWithOwner(ctx context.Context, place *models.Place) error
	// DeleteWithOwner removes the place and pulls its id from the owner's
	// places list inside one transaction.
	DeleteWithOwner(ctx context.Context, place *models.Place) error
}

type MongoPlaceRepository struct {
	client *mongo.Client
	places *mongo.Collection
	users  *mongo.Collection
}

func NewMongoPlaceRepository(db *mongo.Database) *MongoPlaceRepository {
	return &MongoPlaceRepository{
		client: db.Client(),
		places: db.Collection("places"),
		users:  db.Collection("users"),
	}
}

// txnOptions gives both transactional operations majority read/write concern,
// so a concurrent reader never observes one half of the pair.
func txnOptions() *options.TransactionOptions {
	return options.Transaction().
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority())
}

func (r *MongoPlaceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Place, error) {
	var place models.Place
	err := r.places.FindOne(ctx, bson.M{"_id": id}).Decode(&place)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *MongoPlaceRepository) FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Place, error) {
	cursor, err := r.places.Find(ctx, bson.M{"creator": creator})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var places []models.Place
	if err := cursor.All(ctx, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *MongoPlaceRepository) Update(ctx context.Context, place *models.Place) error {
	update := bson.M{"$set": bson.M{
		"title":       place.Title,
		"description": place.Description,
	}}
	result, err := r.places.UpdateOne(ctx, bson.M{"_id": place.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPlaceRepository) InsertWithOwner(ctx context.Context, place *models.Place) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		result, err := r.places.InsertOne(sc, place)
		if err != nil {
			return nil, err
		}
		placeID := result.InsertedID.(primitive.ObjectID)

		update := bson.M{"$push": bson.M{"places": placeID}}
		updateResult, err := r.users.UpdateOne(sc, bson.M{"_id": place.Creator}, update)
		if err != nil {
			return nil, err
		}
		if updateResult.MatchedCount == 0 {
			return nil, ErrNotFound
		}

		place.ID = placeID
		return nil, nil
	}, txnOptions())
	return err
}

func (r *MongoPlaceRepository) DeleteWithOwner(ctx context.Context, place *models.Place) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		deleteResult, err := r.places.DeleteOne(sc, bson.M{"_id": place.ID})
		if err != nil {
			return nil, err
		}
		if deleteResult.DeletedCount == 0 {
			return nil, ErrNotFound
		}

		update := bson.M{"$pull": bson.M{"places": place.ID}}
		if _, err := r.users.UpdateOne(sc, bson.M{"_id": place.Creator}, update); err != nil {
			return nil, err
		}
		return nil, nil
	}, txnOptions())
	return err
}
