package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account document stored in MongoDB. The store is the
// sole mutator of the edge fields: Followers and Following are kept mutually
// consistent by the follow/unfollow dual write, Posts and Bookmarks are
// maintained by the post and bookmark operations.
type User struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	ProfilePicture string               `json:"profilePicture" bson:"profile_picture"`
	Bio            string               `json:"bio" bson:"bio"`
	Gender         string               `json:"gender,omitempty" bson:"gender,omitempty"`
	Followers      []primitive.ObjectID `json:"followers" bson:"followers"`
	Following      []primitive.ObjectID `json:"following" bson:"following"`
	Posts          []primitive.ObjectID `json:"posts" bson:"posts"`
	Bookmarks      []primitive.ObjectID `json:"bookmarks" bson:"bookmarks"`
	FirebaseUID    string               `json:"firebase_uid,omitempty" bson:"firebase_uid,omitempty"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserCompact is the public summary of a user embedded in notifications and
// other enriched payloads.
type UserCompact struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// ToCompact returns the user's public summary.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for local login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest carries a Firebase ID token issued on the client
type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// EditProfileRequest defines the editable profile fields; the profile photo
// travels as a multipart file alongside these fields.
type EditProfileRequest struct {
	Bio    string `json:"bio" form:"bio" validate:"omitempty,max=160"`
	Gender string `json:"gender" form:"gender" validate:"omitempty,oneof=male female"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
