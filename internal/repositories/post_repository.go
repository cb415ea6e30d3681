package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations. The like
// edge mutations rely on MongoDB's atomic set-update operators rather than
// read-modify-write, so simultaneous likes on the same post cannot lose
// updates.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AppendComment(ctx context.Context, postID string, commentID primitive.ObjectID) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post with empty like and comment sets
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []primitive.ObjectID{}
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by hex id
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves posts newest first with pagination
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthor retrieves a user's posts newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	var posts []models.Post
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post by id
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AddLike inserts the user into the post's like set. $addToSet makes the
// operation idempotent: re-liking is a no-op.
func (r *MongoPostRepository) AddLike(ctx context.Context, postID, userID string) error {
	return r.updateLikes(ctx, postID, userID, "$addToSet")
}

// RemoveLike removes the user from the post's like set; removing an absent
// like is a no-op.
func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.updateLikes(ctx, postID, userID, "$pull")
}

func (r *MongoPostRepository) updateLikes(ctx context.Context, postID, userID, op string) error {
	postOID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postOID}, bson.M{op: bson.M{"likes": userOID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AppendComment appends a comment id to the post's comments sequence
func (r *MongoPostRepository) AppendComment(ctx context.Context, postID string, commentID primitive.ObjectID) error {
	postOID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postOID},
		bson.M{"$push": bson.M{"comments": commentID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}
