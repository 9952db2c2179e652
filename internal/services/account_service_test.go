package services

import (
	"testing"
	"time"

	"schoolhub/internal/models"
	"schoolhub/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (*AccountService, *fakeMailer) {
	t.Helper()
	mailer := &fakeMailer{}
	return NewAccountService(testDB(t), testTokens(), mailer), mailer
}

func TestRegisterCreatesUnverifiedAccount(t *testing.T) {
	svc, mailer := newAccountService(t)

	require.NoError(t, svc.Register("Alice", "alice@school.test", models.RoleStudent))
	require.Len(t, mailer.verifications, 1)

	var user models.User
	require.NoError(t, svc.db.Where("email = ?", "alice@school.test").First(&user).Error)
	assert.False(t, user.Verified())
	assert.Empty(t, user.Password)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, mailer.verifications[0], *user.EmailToken)
}

func TestRegisterUnknownRoleBecomesStudent(t *testing.T) {
	svc, _ := newAccountService(t)

	require.NoError(t, svc.Register("Bob", "bob@school.test", "principal"))

	var user models.User
	require.NoError(t, svc.db.Where("email = ?", "bob@school.test").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestRegisterVerifiedEmailRejected(t *testing.T) {
	svc, _ := newAccountService(t)
	seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	err := svc.Register("Mallory", "alice@school.test", models.RoleStudent)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterPendingVerificationRejected(t *testing.T) {
	svc, _ := newAccountService(t)

	require.NoError(t, svc.Register("Alice", "alice@school.test", models.RoleStudent))
	err := svc.Register("Alice", "alice@school.test", models.RoleStudent)
	assert.ErrorIs(t, err, ErrVerificationPending)
}

func TestRegisterReplacesExpiredPendingAccount(t *testing.T) {
	svc, mailer := newAccountService(t)

	require.NoError(t, svc.Register("Alice", "alice@school.test", models.RoleStudent))

	var stale models.User
	require.NoError(t, svc.db.Where("email = ?", "alice@school.test").First(&stale).Error)
	require.NoError(t, svc.db.Model(&stale).
		Update("email_token_expiry", expiredAt(time.Minute)).Error)

	require.NoError(t, svc.Register("Alice", "alice@school.test", models.RoleTeacher))
	require.Len(t, mailer.verifications, 2)

	var fresh models.User
	require.NoError(t, svc.db.Where("email = ?", "alice@school.test").First(&fresh).Error)
	assert.NotEqual(t, stale.ID, fresh.ID)
	assert.Equal(t, models.RoleTeacher, fresh.Role)
}

func TestVerifyEmailSetsPasswordAndClearsTokens(t *testing.T) {
	svc, mailer := newAccountService(t)

	require.NoError(t, svc.Register("Alice", "alice@school.test", models.RoleStudent))
	token := mailer.verifications[0]

	require.NoError(t, svc.VerifyEmail(token, "secret123"))

	var user models.User
	require.NoError(t, svc.db.Where("email = ?", "alice@school.test").First(&user).Error)
	assert.True(t, user.Verified())
	assert.True(t, utils.CheckPasswordHash("secret123", user.Password))

	// The token is single use.
	assert.ErrorIs(t, svc.VerifyEmail(token, "secret123"), ErrTokenNotFound)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	svc, mailer := newAccountService(t)

	require.NoError(t, svc.Register("Alice", "alice@school.test", models.RoleStudent))
	require.NoError(t, svc.db.Model(&models.User{}).
		Where("email = ?", "alice@school.test").
		Update("email_token_expiry", expiredAt(time.Minute)).Error)

	err := svc.VerifyEmail(mailer.verifications[0], "secret123")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestLoginBranches(t *testing.T) {
	svc, _ := newAccountService(t)
	seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	_, err := svc.Login("nobody@school.test", "password1")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = svc.Login("alice@school.test", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	pair, err := svc.Login("alice@school.test", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// Unverified accounts cannot log in regardless of credential.
	require.NoError(t, svc.Register("Bob", "bob@school.test", models.RoleStudent))
	_, err = svc.Login("bob@school.test", "anything")
	assert.ErrorIs(t, err, ErrVerificationPending)

	require.NoError(t, svc.db.Model(&models.User{}).
		Where("email = ?", "bob@school.test").
		Update("email_token_expiry", expiredAt(time.Minute)).Error)
	_, err = svc.Login("bob@school.test", "anything")
	assert.ErrorIs(t, err, ErrVerificationExpired)
}

func TestLoginReusesValidRefreshToken(t *testing.T) {
	svc, _ := newAccountService(t)
	seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	first, err := svc.Login("alice@school.test", "password1")
	require.NoError(t, err)
	second, err := svc.Login("alice@school.test", "password1")
	require.NoError(t, err)

	assert.Equal(t, first.RefreshToken, second.RefreshToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newAccountService(t)
	user := seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	pair, err := svc.Login("alice@school.test", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))
	// Idempotent.
	require.NoError(t, svc.Logout(user.ID))

	_, err = svc.ReissueAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestReissueAccessToken(t *testing.T) {
	svc, _ := newAccountService(t)
	seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	pair, err := svc.Login("alice@school.test", "password1")
	require.NoError(t, err)

	access, err := svc.ReissueAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	// A well-signed token that is not the stored one is rejected.
	foreign, err := svc.tokens.IssueRefreshToken(999)
	require.NoError(t, err)
	_, err = svc.ReissueAccessToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = svc.ReissueAccessToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mailer := newAccountService(t)
	seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	assert.ErrorIs(t, svc.FindPassword("Alice", "wrong@school.test"), ErrAccountNotFound)
	assert.ErrorIs(t, svc.FindPassword("Wrong", "alice@school.test"), ErrAccountNotFound)

	require.NoError(t, svc.FindPassword("Alice", "alice@school.test"))
	require.Len(t, mailer.resets, 1)
	token := mailer.resets[0]

	assert.ErrorIs(t, svc.ResetPassword("bogus", "newpass123"), ErrTokenNotFound)

	require.NoError(t, svc.ResetPassword(token, "newpass123"))

	_, err := svc.Login("alice@school.test", "password1")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, err = svc.Login("alice@school.test", "newpass123")
	assert.NoError(t, err)

	// Reset token is cleared after use.
	assert.ErrorIs(t, svc.ResetPassword(token, "another123"), ErrTokenNotFound)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, mailer := newAccountService(t)
	seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	require.NoError(t, svc.FindPassword("Alice", "alice@school.test"))
	require.NoError(t, svc.db.Model(&models.User{}).
		Where("email = ?", "alice@school.test").
		Update("reset_password_expiry", expiredAt(time.Minute)).Error)

	err := svc.ResetPassword(mailer.resets[0], "newpass123")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestChangeRole(t *testing.T) {
	svc, _ := newAccountService(t)
	teacher := seedUser(t, svc.db, "Teacher", "teacher@school.test", models.RoleTeacher)
	student := seedUser(t, svc.db, "Student", "student@school.test", models.RoleStudent)

	// Students cannot change roles.
	err := svc.ChangeRole(student.ID, teacher.ID, models.RoleStudent)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.ChangeRole(teacher.ID, student.ID, "wizard")
	assert.ErrorIs(t, err, ErrInvalidRole)

	err = svc.ChangeRole(teacher.ID, 999, models.RoleTeacher)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	err = svc.ChangeRole(teacher.ID, student.ID, models.RoleStudent)
	assert.ErrorIs(t, err, ErrSameRole)

	require.NoError(t, svc.ChangeRole(teacher.ID, student.ID, models.RoleAdmin))
	updated, err := svc.GetUser(student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAccountService(t)
	user := seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	assert.ErrorIs(t, svc.UpdateProfile(user.ID, "a", "", "", ""), ErrInvalidName)
	assert.ErrorIs(t, svc.UpdateProfile(user.ID, "", "wrong", "newpass1", ""), ErrPasswordMismatch)
	assert.ErrorIs(t, svc.UpdateProfile(user.ID, "", "password1", "newpass1", "different"), ErrConfirmationMismatch)
	assert.ErrorIs(t, svc.UpdateProfile(user.ID, "", "password1", "password1", "password1"), ErrSamePassword)

	require.NoError(t, svc.UpdateProfile(user.ID, "Alicia", "password1", "newpass1", "newpass1"))

	updated, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.True(t, utils.CheckPasswordHash("newpass1", updated.Password))
}

func TestDeleteAccount(t *testing.T) {
	svc, _ := newAccountService(t)
	user := seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)

	assert.ErrorIs(t, svc.DeleteAccount(user.ID, "wrong"), ErrPasswordMismatch)
	require.NoError(t, svc.DeleteAccount(user.ID, "password1"))

	_, err := svc.GetUser(user.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMyComments(t *testing.T) {
	svc, _ := newAccountService(t)
	user := seedUser(t, svc.db, "Alice", "alice@school.test", models.RoleStudent)
	post := seedPost(t, svc.db, user.ID, "hello")

	comments := NewCommentService(svc.db)
	_, err := comments.Create(user.ID, post.ID, "first", nil)
	require.NoError(t, err)

	// A comment whose post is gone gets the placeholder title.
	orphan := models.Comment{UserID: user.ID, PostID: 9999, Content: "lost"}
	require.NoError(t, svc.db.Create(&orphan).Error)

	mine, err := svc.MyComments(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	titles := map[string]string{}
	for _, m := range mine {
		titles[m.Content] = m.PostTitle
	}
	assert.Equal(t, "hello", titles["first"])
	assert.Equal(t, "Deleted post", titles["lost"])
}
