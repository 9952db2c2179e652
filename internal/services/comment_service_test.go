package services

import (
	"testing"

	"schoolhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentIncrementsCounter(t *testing.T) {
	db := testDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "thread")

	_, err := svc.Create(user.ID, 9999, "no post", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	comment, err := svc.Create(user.ID, post.ID, "top", nil)
	require.NoError(t, err)
	assert.Nil(t, comment.ParentID)

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 1, got.CommentsCount)
}

func TestCreateReplyValidation(t *testing.T) {
	db := testDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "thread")
	other := seedPost(t, db, user.ID, "elsewhere")

	top, err := svc.Create(user.ID, post.ID, "top", nil)
	require.NoError(t, err)

	reply, err := svc.Create(user.ID, post.ID, "reply", &top.ID)
	require.NoError(t, err)
	assert.Equal(t, top.ID, *reply.ParentID)

	// Replies to replies are rejected, the thread is two levels deep.
	_, err = svc.Create(user.ID, post.ID, "nested", &reply.ID)
	assert.ErrorIs(t, err, ErrInvalidParent)

	// A reply cannot land on a different post than its parent.
	_, err = svc.Create(user.ID, other.ID, "cross", &top.ID)
	assert.ErrorIs(t, err, ErrInvalidParent)

	missing := uint(9999)
	_, err = svc.Create(user.ID, post.ID, "orphan", &missing)
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestListByPostGroupsReplies(t *testing.T) {
	db := testDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "thread")

	first, err := svc.Create(user.ID, post.ID, "first", nil)
	require.NoError(t, err)
	_, err = svc.Create(user.ID, post.ID, "second", nil)
	require.NoError(t, err)
	_, err = svc.Create(user.ID, post.ID, "reply", &first.ID)
	require.NoError(t, err)

	comments, err := svc.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "reply", comments[0].Replies[0].Content)
	assert.Empty(t, comments[1].Replies)
}

func TestUpdateComment(t *testing.T) {
	db := testDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "thread")

	comment, err := svc.Create(user.ID, post.ID, "before", nil)
	require.NoError(t, err)

	updated, err := svc.Update(comment.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Content)

	_, err = svc.Update(9999, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTopLevelCascadesToReplies(t *testing.T) {
	db := testDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "thread")

	top, err := svc.Create(user.ID, post.ID, "top", nil)
	require.NoError(t, err)
	_, err = svc.Create(user.ID, post.ID, "reply", &top.ID)
	require.NoError(t, err)

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	require.Equal(t, 2, got.CommentsCount)

	require.NoError(t, svc.Delete(top.ID))

	var remaining int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("post_id = ?", post.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 0, got.CommentsCount)
}

func TestDeleteReplyDecrementsByOne(t *testing.T) {
	db := testDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "thread")

	top, err := svc.Create(user.ID, post.ID, "top", nil)
	require.NoError(t, err)
	reply, err := svc.Create(user.ID, post.ID, "reply", &top.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(reply.ID))

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 1, got.CommentsCount)
}

func TestDeleteCommentCounterFloorsAtZero(t *testing.T) {
	db := testDB(t)
	svc := NewCommentService(db)
	user := seedUser(t, db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, db, user.ID, "drift")

	comment, err := svc.Create(user.ID, post.ID, "only", nil)
	require.NoError(t, err)

	// Simulate counter drift: the stored count is already zero.
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("comments_count", 0).Error)

	require.NoError(t, svc.Delete(comment.ID))

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 0, got.CommentsCount)
}
