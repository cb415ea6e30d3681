package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes ---

type fakeUserRepo struct {
	users     map[string]*models.User
	followErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID.Hex()] = u
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	f.users[user.ID.Hex()] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetSuggestedUsers(ctx context.Context, excludeID string) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id, bio, gender, profilePicture string) (*models.User, error) {
	return f.GetUserByID(ctx, id)
}

func (f *fakeUserRepo) Follow(ctx context.Context, followerID, targetID string) error {
	if f.followErr != nil {
		return f.followErr
	}
	if followerID == targetID {
		return repositories.ErrSelfFollow
	}
	follower, ok := f.users[followerID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	target, ok := f.users[targetID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	follower.Following = addToSet(follower.Following, target.ID)
	target.Followers = addToSet(target.Followers, follower.ID)
	return nil
}

func (f *fakeUserRepo) Unfollow(ctx context.Context, followerID, targetID string) error {
	follower, ok := f.users[followerID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	target, ok := f.users[targetID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	follower.Following = pull(follower.Following, target.ID)
	target.Followers = pull(target.Followers, follower.ID)
	return nil
}

func (f *fakeUserRepo) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	follower, ok := f.users[followerID]
	if !ok {
		return false, repositories.ErrUserNotFound
	}
	for _, id := range follower.Following {
		if id.Hex() == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ToggleBookmark(ctx context.Context, userID, postID string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) AddPostRef(ctx context.Context, userID, postID string) error { return nil }

func (f *fakeUserRepo) RemovePostRef(ctx context.Context, userID, postID string) error { return nil }

type fakePostRepo struct {
	posts      map[string]*models.Post
	addLikeErr error
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[string]*models.Post)}
	for _, p := range posts {
		repo.posts[p.ID.Hex()] = p
	}
	return repo
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	f.posts[post.ID.Hex()] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) AddLike(ctx context.Context, postID, userID string) error {
	if f.addLikeErr != nil {
		return f.addLikeErr
	}
	post, ok := f.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repositories.ErrInvalidID
	}
	post.Likes = addToSet(post.Likes, oid)
	return nil
}

func (f *fakePostRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	post, ok := f.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repositories.ErrInvalidID
	}
	post.Likes = pull(post.Likes, oid)
	return nil
}

func (f *fakePostRepo) AppendComment(ctx context.Context, postID string, commentID primitive.ObjectID) error {
	post, ok := f.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	post.Comments = append(post.Comments, commentID)
	return nil
}

type fakeCommentRepo struct {
	comments []*models.Comment
}

func (f *fakeCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	return nil, nil
}

func (f *fakeCommentRepo) DeleteCommentsByPostID(ctx context.Context, postID string) error {
	return nil
}

// recordingDispatcher captures every push for assertions.
type recordingDispatcher struct {
	dispatched []dispatchedEvent
}

type dispatchedEvent struct {
	targetUserID string
	eventName    string
	payload      any
}

func (d *recordingDispatcher) Dispatch(targetUserID string, event models.NotificationEvent) {
	d.dispatched = append(d.dispatched, dispatchedEvent{targetUserID, "notification", event})
}

func (d *recordingDispatcher) Push(targetUserID, eventName string, payload any) {
	d.dispatched = append(d.dispatched, dispatchedEvent{targetUserID, eventName, payload})
}

func (d *recordingDispatcher) lastEvent(t *testing.T) models.NotificationEvent {
	t.Helper()
	require.NotEmpty(t, d.dispatched)
	event, ok := d.dispatched[len(d.dispatched)-1].payload.(models.NotificationEvent)
	require.True(t, ok)
	return event
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func newTestUser(username string) *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Email:    username + "@example.com",
	}
}

// --- Tests ---

func TestLikePostNotifiesAuthor(t *testing.T) {
	actor := newTestUser("zara")
	author := newTestUser("omar")
	post := &models.Post{ID: primitive.NewObjectID(), Author: author.ID}

	users := newFakeUserRepo(actor, author)
	posts := newFakePostRepo(post)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, posts, &fakeCommentRepo{}, dispatcher)

	err := svc.LikePost(context.Background(), actor.ID.Hex(), post.ID.Hex())
	require.NoError(t, err)

	assert.Contains(t, post.Likes, actor.ID)

	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, author.ID.Hex(), dispatcher.dispatched[0].targetUserID)
	event := dispatcher.lastEvent(t)
	assert.Equal(t, models.NotificationTypeLike, event.Type)
	assert.Equal(t, actor.ID.Hex(), event.UserID)
	assert.Equal(t, "zara", event.UserDetails.Username)
	assert.Equal(t, post.ID.Hex(), event.PostID)
	assert.Equal(t, "Your post was liked", event.Message)
}

func TestLikePostDuplicateStillDispatches(t *testing.T) {
	actor := newTestUser("zara")
	author := newTestUser("omar")
	post := &models.Post{ID: primitive.NewObjectID(), Author: author.ID}

	users := newFakeUserRepo(actor, author)
	posts := newFakePostRepo(post)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, posts, &fakeCommentRepo{}, dispatcher)

	require.NoError(t, svc.LikePost(context.Background(), actor.ID.Hex(), post.ID.Hex()))
	require.NoError(t, svc.LikePost(context.Background(), actor.ID.Hex(), post.ID.Hex()))

	// The like set stays a set, but each request is a fresh interaction.
	assert.Len(t, post.Likes, 1)
	assert.Len(t, dispatcher.dispatched, 2)
}

func TestLikeOwnPostRecordsButDoesNotNotify(t *testing.T) {
	actor := newTestUser("zara")
	post := &models.Post{ID: primitive.NewObjectID(), Author: actor.ID}

	users := newFakeUserRepo(actor)
	posts := newFakePostRepo(post)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, posts, &fakeCommentRepo{}, dispatcher)

	require.NoError(t, svc.LikePost(context.Background(), actor.ID.Hex(), post.ID.Hex()))

	assert.Contains(t, post.Likes, actor.ID)
	assert.Empty(t, dispatcher.dispatched)
}

func TestLikePostUnknownPost(t *testing.T) {
	actor := newTestUser("zara")
	users := newFakeUserRepo(actor)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, newFakePostRepo(), &fakeCommentRepo{}, dispatcher)

	err := svc.LikePost(context.Background(), actor.ID.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
	assert.Empty(t, dispatcher.dispatched)
}

func TestLikePostStoreFailureAbortsBeforeNotification(t *testing.T) {
	actor := newTestUser("zara")
	author := newTestUser("omar")
	post := &models.Post{ID: primitive.NewObjectID(), Author: author.ID}

	users := newFakeUserRepo(actor, author)
	posts := newFakePostRepo(post)
	posts.addLikeErr = errors.New("write concern timeout")
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, posts, &fakeCommentRepo{}, dispatcher)

	err := svc.LikePost(context.Background(), actor.ID.Hex(), post.ID.Hex())
	assert.Error(t, err)
	assert.Empty(t, dispatcher.dispatched)
}

func TestDislikePostRemovesLikeAndNotifies(t *testing.T) {
	actor := newTestUser("zara")
	author := newTestUser("omar")
	post := &models.Post{
		ID:     primitive.NewObjectID(),
		Author: author.ID,
		Likes:  []primitive.ObjectID{actor.ID},
	}

	users := newFakeUserRepo(actor, author)
	posts := newFakePostRepo(post)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, posts, &fakeCommentRepo{}, dispatcher)

	require.NoError(t, svc.DislikePost(context.Background(), actor.ID.Hex(), post.ID.Hex()))

	assert.NotContains(t, post.Likes, actor.ID)
	event := dispatcher.lastEvent(t)
	assert.Equal(t, models.NotificationTypeDislike, event.Type)
	assert.Equal(t, "Your post was disliked", event.Message)
}

func TestCommentOnPostAppendsAndNotifies(t *testing.T) {
	actor := newTestUser("zara")
	author := newTestUser("omar")
	post := &models.Post{ID: primitive.NewObjectID(), Author: author.ID}

	users := newFakeUserRepo(actor, author)
	posts := newFakePostRepo(post)
	comments := &fakeCommentRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, posts, comments, dispatcher)

	comment, err := svc.CommentOnPost(context.Background(), actor.ID.Hex(), post.ID.Hex(), "nice shot")
	require.NoError(t, err)
	require.NotNil(t, comment)

	assert.Equal(t, "nice shot", comment.Text)
	assert.Equal(t, actor.ID, comment.Author)
	assert.Equal(t, post.ID, comment.Post)
	assert.Contains(t, post.Comments, comment.ID)

	event := dispatcher.lastEvent(t)
	assert.Equal(t, models.NotificationTypeComment, event.Type)
	assert.Equal(t, "zara commented on your post", event.Message)
}

func TestCommentOnPostEmptyText(t *testing.T) {
	actor := newTestUser("zara")
	author := newTestUser("omar")
	post := &models.Post{ID: primitive.NewObjectID(), Author: author.ID}

	users := newFakeUserRepo(actor, author)
	posts := newFakePostRepo(post)
	comments := &fakeCommentRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, posts, comments, dispatcher)

	_, err := svc.CommentOnPost(context.Background(), actor.ID.Hex(), post.ID.Hex(), "")
	assert.ErrorIs(t, err, repositories.ErrCommentTextRequired)
	assert.Empty(t, comments.comments)
	assert.Empty(t, post.Comments)
	assert.Empty(t, dispatcher.dispatched)
}

func TestToggleFollowCreatesBidirectionalEdge(t *testing.T) {
	actor := newTestUser("zara")
	target := newTestUser("omar")

	users := newFakeUserRepo(actor, target)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, newFakePostRepo(), &fakeCommentRepo{}, dispatcher)

	followed, err := svc.ToggleFollow(context.Background(), actor.ID.Hex(), target.ID.Hex())
	require.NoError(t, err)
	assert.True(t, followed)

	assert.Contains(t, actor.Following, target.ID)
	assert.Contains(t, target.Followers, actor.ID)

	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, target.ID.Hex(), dispatcher.dispatched[0].targetUserID)
	event := dispatcher.lastEvent(t)
	assert.Equal(t, models.NotificationTypeFollow, event.Type)
	assert.Equal(t, "zara started following you", event.Message)
	assert.Empty(t, event.PostID)
}

func TestToggleFollowRoundTripRestoresSets(t *testing.T) {
	actor := newTestUser("zara")
	target := newTestUser("omar")

	users := newFakeUserRepo(actor, target)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, newFakePostRepo(), &fakeCommentRepo{}, dispatcher)

	followed, err := svc.ToggleFollow(context.Background(), actor.ID.Hex(), target.ID.Hex())
	require.NoError(t, err)
	assert.True(t, followed)

	followed, err = svc.ToggleFollow(context.Background(), actor.ID.Hex(), target.ID.Hex())
	require.NoError(t, err)
	assert.False(t, followed)

	assert.Empty(t, actor.Following)
	assert.Empty(t, target.Followers)

	// Only the follow half notifies; the unfollow stays silent.
	assert.Len(t, dispatcher.dispatched, 1)
}

func TestToggleFollowSelf(t *testing.T) {
	actor := newTestUser("zara")
	users := newFakeUserRepo(actor)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, newFakePostRepo(), &fakeCommentRepo{}, dispatcher)

	_, err := svc.ToggleFollow(context.Background(), actor.ID.Hex(), actor.ID.Hex())
	assert.ErrorIs(t, err, repositories.ErrSelfFollow)
	assert.Empty(t, actor.Following)
	assert.Empty(t, dispatcher.dispatched)
}

func TestToggleFollowUnknownTarget(t *testing.T) {
	actor := newTestUser("zara")
	users := newFakeUserRepo(actor)
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, newFakePostRepo(), &fakeCommentRepo{}, dispatcher)

	_, err := svc.ToggleFollow(context.Background(), actor.ID.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	assert.Empty(t, dispatcher.dispatched)
}

func TestToggleFollowStoreFailureSuppressesNotification(t *testing.T) {
	actor := newTestUser("zara")
	target := newTestUser("omar")

	users := newFakeUserRepo(actor, target)
	users.followErr = errors.New("replica set unavailable")
	dispatcher := &recordingDispatcher{}
	svc := NewInteractionService(users, newFakePostRepo(), &fakeCommentRepo{}, dispatcher)

	_, err := svc.ToggleFollow(context.Background(), actor.ID.Hex(), target.ID.Hex())
	assert.Error(t, err)
	assert.Empty(t, dispatcher.dispatched)
}
