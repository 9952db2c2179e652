package services

import (
	"schoolhub/internal/models"

	"gorm.io/gorm"
)

// Denormalized counter maintenance. The counters are read on every list
// view, so they are bumped incrementally at write time instead of being
// recomputed with aggregate queries. Callers invoke these in the same
// logical operation that creates or removes the Comment/Like row; the
// decrements are floored at zero.

func IncrementPostComments(db *gorm.DB, postID uint) error {
	return db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
}

func DecrementPostComments(db *gorm.DB, postID uint, n int) error {
	return db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr(
			"CASE WHEN comments_count >= ? THEN comments_count - ? ELSE 0 END", n, n)).Error
}

func IncrementPostLikes(db *gorm.DB, postID uint) error {
	return db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
}

func DecrementPostLikes(db *gorm.DB, postID uint) error {
	return db.Model(&models.Post{}).Where("id = ? AND likes_count > 0", postID).
		UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
}

func IncrementCommentLikes(db *gorm.DB, commentID uint) error {
	return db.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
}

func DecrementCommentLikes(db *gorm.DB, commentID uint) error {
	return db.Model(&models.Comment{}).Where("id = ? AND likes_count > 0", commentID).
		UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
}
