package services

import (
	"errors"
	"fmt"

	"schoolhub/internal/models"

	"gorm.io/gorm"
)

// CommentService manages the two-level comment thread of a post and keeps
// the post's comments counter in step. Counter updates are explicit calls
// made here, in the same operation as the row change.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create adds a comment, optionally as a reply to a top-level comment of
// the same post, and increments the post's counter.
func (s *CommentService) Create(userID, postID uint, content string, parentID *uint) (*models.Comment, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup post: %w", err)
	}

	if parentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, fmt.Errorf("lookup parent comment: %w", err)
		}
		// Threads are bounded at two levels: replies to replies are not
		// accepted, and a reply stays on its parent's post.
		if parent.ParentID != nil || parent.PostID != postID {
			return nil, ErrInvalidParent
		}
	}

	comment := models.Comment{
		UserID:   userID,
		PostID:   postID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := IncrementPostComments(s.db, postID); err != nil {
		return nil, fmt.Errorf("update comment count: %w", err)
	}
	return &comment, nil
}

// ListByPost returns the post's top-level comments in creation order,
// each with its replies in creation order.
func (s *CommentService) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("post_id = ? AND parent_id IS NULL", postID).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Update replaces a comment's content.
func (s *CommentService) Update(commentID uint, content string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup comment: %w", err)
	}
	comment.Content = content
	if err := s.db.Save(&comment).Error; err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}
	return &comment, nil
}

// Delete removes a comment. Deleting a top-level comment cascades to its
// replies; the post counter drops by the total number of removed rows.
func (s *CommentService) Delete(commentID uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup comment: %w", err)
	}

	var replies []models.Comment
	if comment.ParentID == nil {
		if err := s.db.Where("parent_id = ?", comment.ID).Find(&replies).Error; err != nil {
			return fmt.Errorf("lookup replies: %w", err)
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if len(replies) > 0 {
			if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("delete replies: %w", err)
			}
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		return DecrementPostComments(tx, comment.PostID, 1+len(replies))
	})
}
