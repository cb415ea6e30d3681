package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB. Likes is a set of
// user ids mutated only through $addToSet/$pull; Comments is an ordered
// sequence of comment ids, each referencing a Comment whose Post field equals
// this post's id.
type Post struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Caption   string               `json:"caption" bson:"caption"`
	Image     string               `json:"image" bson:"image"`
	Author    primitive.ObjectID   `json:"author" bson:"author"` // immutable after creation
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []primitive.ObjectID `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}
