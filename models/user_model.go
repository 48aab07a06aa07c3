package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Email        string               `json:"email" bson:"email"`
	PasswordHash string               `json:"-" bson:"password_hash,omitempty"`
	ImageURL     string               `json:"image_url" bson:"image_url"`
	Places       []primitive.ObjectID `json:"places" bson:"places"`
}
