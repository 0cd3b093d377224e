package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives only inside its parent Movie document. It has no collection
// of its own; the _id is minted when the comment is appended and is unique
// within that movie.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id"        json:"id"`
	UserID    primitive.ObjectID `bson:"user_id"    json:"userId"`
	Email     string             `bson:"email"      json:"email"`
	Name      string             `bson:"name"       json:"name"`
	Text      string             `bson:"text"       json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title"       json:"title"`
	Director    string             `bson:"director"    json:"director"`
	Year        int                `bson:"year"        json:"year"`
	Description string             `bson:"description" json:"description"`
	Genre       string             `bson:"genre"       json:"genre"`
	Comments    []Comment          `bson:"comments"    json:"comments"`
	CreatedAt   time.Time          `bson:"created_at"  json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at"  json:"updatedAt"`
}
