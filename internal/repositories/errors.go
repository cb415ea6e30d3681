package repositories

import "errors"

// Sentinel errors shared by the repositories. Handlers map these onto HTTP
// statuses with errors.Is.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrEmailTaken          = errors.New("user already exists")
	ErrSelfFollow          = errors.New("cannot follow or unfollow yourself")
	ErrCommentTextRequired = errors.New("comment text is required")
	ErrMessageTextRequired = errors.New("message text is required")
	ErrInvalidID           = errors.New("invalid id format")
)
