package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations, including
// the two-sided follow graph and the bookmark set.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetSuggestedUsers(ctx context.Context, excludeID string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id, bio, gender, profilePicture string) (*models.User, error)
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)
	ToggleBookmark(ctx context.Context, userID, postID string) (saved bool, err error)
	AddPostRef(ctx context.Context, userID, postID string) error
	RemovePostRef(ctx context.Context, userID, postID string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser creates a new user document. Edge fields start as empty sets so
// later $addToSet/$pull updates never hit a missing array.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	existing := r.collection.FindOne(ctx, bson.M{"email": user.Email})
	if existing.Err() == nil {
		return ErrEmailTaken
	}

	user.ID = primitive.NewObjectID()
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	if user.Bookmarks == nil {
		user.Bookmarks = []primitive.ObjectID{}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by hex id
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *MongoUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"firebase_uid": firebaseUID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetSuggestedUsers retrieves all users except the caller
func (r *MongoUserRepository) GetSuggestedUsers(ctx context.Context, excludeID string) ([]models.User, error) {
	objID, err := primitive.ObjectIDFromHex(excludeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	var users []models.User
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$ne": objID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile updates the provided profile fields (empty values are left
// untouched) and returns the updated user.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id, bio, gender, profilePicture string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	set := bson.M{"updated_at": time.Now()}
	if bio != "" {
		set["bio"] = bio
	}
	if gender != "" {
		set["gender"] = gender
	}
	if profilePicture != "" {
		set["profile_picture"] = profilePicture
	}

	var user models.User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Follow records the edge on both sides: targetID is added to the follower's
// following set and followerID to the target's followers set. The two legs
// are idempotent single-step updates; if the second leg fails the first is
// compensated with the inverse update so the graph stays two-sided.
func (r *MongoUserRepository) Follow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return ErrSelfFollow
	}
	followerOID, targetOID, err := parseEdge(followerID, targetID)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": followerOID},
		bson.M{"$addToSet": bson.M{"following": targetOID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	res, err = r.collection.UpdateOne(ctx, bson.M{"_id": targetOID},
		bson.M{"$addToSet": bson.M{"followers": followerOID}})
	if err == nil && res.MatchedCount == 0 {
		err = ErrUserNotFound
	}
	if err != nil {
		r.compensate(ctx, followerOID, bson.M{"$pull": bson.M{"following": targetOID}}, followerID, targetID)
		return err
	}
	return nil
}

// Unfollow removes the edge from both sides with the same compensation
// strategy as Follow.
func (r *MongoUserRepository) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return ErrSelfFollow
	}
	followerOID, targetOID, err := parseEdge(followerID, targetID)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": followerOID},
		bson.M{"$pull": bson.M{"following": targetOID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	res, err = r.collection.UpdateOne(ctx, bson.M{"_id": targetOID},
		bson.M{"$pull": bson.M{"followers": followerOID}})
	if err == nil && res.MatchedCount == 0 {
		err = ErrUserNotFound
	}
	if err != nil {
		r.compensate(ctx, followerOID, bson.M{"$addToSet": bson.M{"following": targetOID}}, followerID, targetID)
		return err
	}
	return nil
}

// compensate reverts the first leg of a failed dual write. A failure here
// leaves a torn edge; that is logged and never surfaced to the caller.
func (r *MongoUserRepository) compensate(ctx context.Context, followerOID primitive.ObjectID, update bson.M, followerID, targetID string) {
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": followerOID}, update); err != nil {
		log.Printf("users: torn follow edge (%s -> %s), compensation failed: %v", followerID, targetID, err)
	}
}

// IsFollowing reports whether followerID currently follows targetID
func (r *MongoUserRepository) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	followerOID, targetOID, err := parseEdge(followerID, targetID)
	if err != nil {
		return false, err
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": followerOID, "following": targetOID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleBookmark saves the post when it is not bookmarked yet and removes it
// otherwise, reporting which of the two happened.
func (r *MongoUserRepository) ToggleBookmark(ctx context.Context, userID, postID string) (bool, error) {
	userOID, postOID, err := parseEdge(userID, postID)
	if err != nil {
		return false, err
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": userOID, "bookmarks": postOID})
	if err != nil {
		return false, err
	}

	update := bson.M{"$addToSet": bson.M{"bookmarks": postOID}}
	saved := true
	if count > 0 {
		update = bson.M{"$pull": bson.M{"bookmarks": postOID}}
		saved = false
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userOID}, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrUserNotFound
	}
	return saved, nil
}

// AddPostRef appends a post id to the user's posts sequence
func (r *MongoUserRepository) AddPostRef(ctx context.Context, userID, postID string) error {
	userOID, postOID, err := parseEdge(userID, postID)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userOID},
		bson.M{"$push": bson.M{"posts": postOID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RemovePostRef removes a post id from the user's posts sequence
func (r *MongoUserRepository) RemovePostRef(ctx context.Context, userID, postID string) error {
	userOID, postOID, err := parseEdge(userID, postID)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": userOID},
		bson.M{"$pull": bson.M{"posts": postOID}})
	return err
}

// parseEdge converts a pair of hex ids.
func parseEdge(a, b string) (primitive.ObjectID, primitive.ObjectID, error) {
	aOID, err := primitive.ObjectIDFromHex(a)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	bOID, err := primitive.ObjectIDFromHex(b)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return aOID, bOID, nil
}
