package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title    string             `json:"title" bson:"title"`
	Category string             `json:"category" bson:"category"`

	// Optional catalog metadata
	Level       *string `json:"level,omitempty" bson:"level,omitempty"`
	Description *string `json:"description,omitempty" bson:"description,omitempty"`
}

func (Course) CollectionName() string {
	return "course"
}
