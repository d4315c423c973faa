package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExamResult is the document shape other tools write into the store
// after grading. The platform service declares it for consumers but
// exposes no operations on it yet.
type ExamResult struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserEmail string             `json:"user_email" bson:"user_email"`
	Subject   string             `json:"subject" bson:"subject"`
	Score     int                `json:"score" bson:"score"`
	Total     int                `json:"total" bson:"total"`
}

func (ExamResult) CollectionName() string {
	return "exam_result"
}
