package services

import (
	"testing"

	"schoolhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestAddLikeTargetValidation(t *testing.T) {
	svc := NewLikeService(testDB(t))

	_, err := svc.AddLike(1, nil, nil)
	assert.ErrorIs(t, err, ErrMissingTarget)

	_, err = svc.AddLike(1, uintPtr(1), uintPtr(2))
	assert.ErrorIs(t, err, ErrAmbiguousTarget)
}

func TestAddLikeIncrementsPostCounter(t *testing.T) {
	db := testDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "liked")

	like, err := svc.AddLike(user.ID, &post.ID, nil)
	require.NoError(t, err)
	assert.NotZero(t, like.ID)

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 1, got.LikesCount)

	_, err = svc.AddLike(user.ID, &post.ID, nil)
	assert.ErrorIs(t, err, ErrDuplicateLike)

	// The duplicate attempt must not touch the counter.
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 1, got.LikesCount)
}

func TestSameUserCanLikePostAndComment(t *testing.T) {
	db := testDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "both")

	comment := models.Comment{UserID: user.ID, PostID: post.ID, Content: "hi"}
	require.NoError(t, db.Create(&comment).Error)

	_, err := svc.AddLike(user.ID, &post.ID, nil)
	require.NoError(t, err)
	_, err = svc.AddLike(user.ID, nil, &comment.ID)
	require.NoError(t, err)

	var got models.Comment
	require.NoError(t, db.First(&got, comment.ID).Error)
	assert.Equal(t, 1, got.LikesCount)
}

func TestRemoveLikeDecrementsCounter(t *testing.T) {
	db := testDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "unliked")

	like, err := svc.AddLike(user.ID, &post.ID, nil)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLike(like.ID))

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 0, got.LikesCount)

	assert.ErrorIs(t, svc.RemoveLike(like.ID), ErrLikeNotFound)

	// Counter stays floored at zero.
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 0, got.LikesCount)
}

func TestBestComment(t *testing.T) {
	db := testDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "best")

	best, err := svc.BestComment(post.ID)
	require.NoError(t, err)
	assert.Nil(t, best)

	for _, likes := range []int{2, 5, 7, 5} {
		comment := models.Comment{
			UserID:     user.ID,
			PostID:     post.ID,
			Content:    "c",
			LikesCount: likes,
		}
		require.NoError(t, db.Create(&comment).Error)
	}

	best, err = svc.BestComment(post.ID)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 7, best.LikesCount)
}

func TestBestCommentBelowThreshold(t *testing.T) {
	db := testDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "quiet")

	comment := models.Comment{UserID: user.ID, PostID: post.ID, Content: "c", LikesCount: 4}
	require.NoError(t, db.Create(&comment).Error)

	best, err := svc.BestComment(post.ID)
	require.NoError(t, err)
	assert.Nil(t, best)
}
