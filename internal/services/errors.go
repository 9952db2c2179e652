package services

import (
	"errors"
)

// Service-level failures. Handlers translate these into HTTP statuses;
// anything not listed here surfaces as a generic server error.
var (
	// Account lifecycle
	ErrEmailTaken           = errors.New("email already registered")
	ErrVerificationPending  = errors.New("email verification pending")
	ErrVerificationExpired  = errors.New("email verification expired")
	ErrTokenNotFound        = errors.New("token not found")
	ErrTokenExpired         = errors.New("token expired")
	ErrAccountNotFound      = errors.New("account not found")
	ErrWrongPassword        = errors.New("wrong password")
	ErrInvalidRefresh       = errors.New("invalid refresh token")
	ErrForbidden            = errors.New("no permission")
	ErrInvalidRole          = errors.New("invalid role")
	ErrSameRole             = errors.New("role unchanged")
	ErrPasswordMismatch     = errors.New("password does not match")
	ErrSamePassword         = errors.New("new password equals current password")
	ErrConfirmationMismatch = errors.New("new passwords do not match")
	ErrInvalidName          = errors.New("invalid name format")

	// Likes
	ErrMissingTarget   = errors.New("either postId or commentId is required")
	ErrAmbiguousTarget = errors.New("only one of postId or commentId can be given")
	ErrDuplicateLike   = errors.New("already liked")
	ErrLikeNotFound    = errors.New("like not found")

	// Comments
	ErrInvalidParent = errors.New("invalid parent comment")

	// Generic lookup failure for boards, categories, posts, comments,
	// competitions and points.
	ErrNotFound = errors.New("record not found")
)
