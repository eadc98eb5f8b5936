package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactForm is one storefront contact-form submission.
type ContactForm struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Message   string             `bson:"message" json:"message"`
	Timestamp time.Time          `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}
