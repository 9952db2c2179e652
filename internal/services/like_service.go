package services

import (
	"errors"
	"fmt"

	"schoolhub/internal/models"

	"gorm.io/gorm"
)

// A like ranks as "best comment" material from this count upward.
const bestCommentThreshold = 5

// LikeService enforces the like invariants: a like targets exactly one of
// a post or a comment, and a user likes a given target at most once. The
// application-level duplicate check is the fast path; the unique indexes
// on the likes table are the final guard.
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// AddLike persists a like and bumps the target's counter in one
// transaction.
func (s *LikeService) AddLike(userID uint, postID, commentID *uint) (*models.Like, error) {
	if postID == nil && commentID == nil {
		return nil, ErrMissingTarget
	}
	if postID != nil && commentID != nil {
		return nil, ErrAmbiguousTarget
	}

	query := s.db.Where("user_id = ?", userID)
	if postID != nil {
		query = query.Where("post_id = ?", *postID)
	} else {
		query = query.Where("comment_id = ?", *commentID)
	}
	var existing models.Like
	if err := query.First(&existing).Error; err == nil {
		return nil, ErrDuplicateLike
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup like: %w", err)
	}

	like := models.Like{UserID: userID, PostID: postID, CommentID: commentID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		if postID != nil {
			return IncrementPostLikes(tx, *postID)
		}
		return IncrementCommentLikes(tx, *commentID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLike
		}
		return nil, fmt.Errorf("create like: %w", err)
	}
	return &like, nil
}

// RemoveLike deletes a like and decrements the target's counter. The
// target reference is captured before the delete; the row is gone
// afterwards.
func (s *LikeService) RemoveLike(likeID uint) error {
	var like models.Like
	if err := s.db.First(&like, likeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLikeNotFound
		}
		return fmt.Errorf("lookup like: %w", err)
	}

	postID, commentID := like.PostID, like.CommentID

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&like).Error; err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		if postID != nil {
			return DecrementPostLikes(tx, *postID)
		}
		if commentID != nil {
			return DecrementCommentLikes(tx, *commentID)
		}
		return nil
	})
}

// BestComment returns the post's comment with the highest likes count of
// at least five, or nil when no comment qualifies.
func (s *LikeService) BestComment(postID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Where("post_id = ? AND likes_count >= ?", postID, bestCommentThreshold).
		Order("likes_count DESC").First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup best comment: %w", err)
	}
	return &comment, nil
}
