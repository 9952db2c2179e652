package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"schoolhub/internal/models"
	"schoolhub/internal/utils"

	"gorm.io/gorm"
)

// Allowed profile names: 2-20 Hangul or latin letters.
var nameFormat = regexp.MustCompile(`^[가-힣a-zA-Z]{2,20}$`)

// TokenPair is what a successful login hands back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MyComment is a comment of the requesting user enriched with the title
// of the post it was written on.
type MyComment struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `json:"post_id"`
	PostTitle string    `json:"post_title"`
}

// AccountService owns the account lifecycle: registration with email
// verification, login with refresh token rotation, password reset and
// profile maintenance. Accounts start UNVERIFIED (credential empty, a
// pending email token) and become VERIFIED when the token is redeemed.
type AccountService struct {
	db     *gorm.DB
	tokens *TokenService
	mail   Mailer
}

func NewAccountService(db *gorm.DB, tokens *TokenService, mail Mailer) *AccountService {
	return &AccountService{db: db, tokens: tokens, mail: mail}
}

// Register creates an unverified account and mails a verification token.
// A verified account with the same email fails; an unverified one blocks
// until its token expires, after which the stale record is replaced.
func (s *AccountService) Register(name, email string, role models.Role) error {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Verified() {
			return ErrEmailTaken
		}
		if existing.EmailTokenExpiry != nil && time.Now().Before(*existing.EmailTokenExpiry) {
			return ErrVerificationPending
		}
		// Stale unverified record: replace it.
		if err := s.db.Delete(&existing).Error; err != nil {
			return fmt.Errorf("remove stale account: %w", err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup account: %w", err)
	}

	// Self-registration only hands out student or teacher.
	if role != models.RoleTeacher {
		role = models.RoleStudent
	}

	token, expiry, err := s.tokens.NewEphemeralToken(EphemeralTokenTTL)
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}

	user := models.User{
		Name:             name,
		Email:            email,
		Role:             role,
		EmailToken:       &token,
		EmailTokenExpiry: &expiry,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	// The account row stays even if the mail fails; the caller can retry
	// by re-registering once the token expires.
	if err := s.mail.SendVerificationEmail(email, token); err != nil {
		return err
	}
	return nil
}

// VerifyEmail redeems a verification token and sets the credential,
// transitioning the account to VERIFIED. Both token fields are cleared
// permanently.
func (s *AccountService) VerifyEmail(token, password string) error {
	var user models.User
	if err := s.db.Where("email_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("lookup token: %w", err)
	}

	if user.EmailTokenExpiry != nil && time.Now().After(*user.EmailTokenExpiry) {
		return ErrTokenExpired
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.Password = hash
	user.EmailToken = nil
	user.EmailTokenExpiry = nil
	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// Login checks the credential and returns an access/refresh pair. A still
// valid stored refresh token is reused, otherwise a fresh one is minted
// and persisted (single active session per account).
func (s *AccountService) Login(email, password string) (*TokenPair, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if user.EmailTokenExpiry != nil {
		if time.Now().Before(*user.EmailTokenExpiry) {
			return nil, ErrVerificationPending
		}
		return nil, ErrVerificationExpired
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrWrongPassword
	}

	refresh := ""
	if user.RefreshToken != nil {
		if _, err := s.tokens.VerifyRefreshToken(*user.RefreshToken); err == nil {
			refresh = *user.RefreshToken
		}
	}
	if refresh == "" {
		minted, err := s.tokens.IssueRefreshToken(user.ID)
		if err != nil {
			return nil, fmt.Errorf("issue refresh token: %w", err)
		}
		refresh = minted
		user.RefreshToken = &minted
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("persist refresh token: %w", err)
		}
	}

	access, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout clears the stored refresh token. Calling it again is a no-op.
func (s *AccountService) Logout(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if err := s.db.Model(&user).Update("refresh_token", nil).Error; err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// ReissueAccessToken mints a new access token for a valid refresh token.
// The presented token must match the stored one exactly, so logout (or a
// rotation on another device) revokes it.
func (s *AccountService) ReissueAccessToken(refreshToken string) (string, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return "", ErrInvalidRefresh
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", ErrInvalidRefresh
	}

	access, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// FindPassword mails a reset token to the account matching name+email.
func (s *AccountService) FindPassword(name, email string) error {
	var user models.User
	if err := s.db.Where("name = ? AND email = ?", name, email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	token, expiry, err := s.tokens.NewEphemeralToken(EphemeralTokenTTL)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	user.ResetPasswordToken = &token
	user.ResetPasswordExpiry = &expiry
	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("save account: %w", err)
	}

	if err := s.mail.SendPasswordResetEmail(email, token); err != nil {
		return err
	}
	return nil
}

// ResetPassword redeems a reset token and replaces the credential,
// clearing the reset pair.
func (s *AccountService) ResetPassword(token, newPassword string) error {
	var user models.User
	if err := s.db.Where("reset_password_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("lookup token: %w", err)
	}

	if user.ResetPasswordExpiry != nil && time.Now().After(*user.ResetPasswordExpiry) {
		return ErrTokenExpired
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	user.ResetPasswordToken = nil
	user.ResetPasswordExpiry = nil
	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// ChangeRole lets a teacher move another member to a different role.
func (s *AccountService) ChangeRole(requesterID, targetID uint, newRole models.Role) error {
	var requester models.User
	if err := s.db.First(&requester, requesterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup requester: %w", err)
	}
	if requester.Role != models.RoleTeacher {
		return ErrForbidden
	}
	if !models.ValidRole(newRole) {
		return ErrInvalidRole
	}

	var target models.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup target: %w", err)
	}
	if target.Role == newRole {
		return ErrSameRole
	}

	target.Role = newRole
	if err := s.db.Save(&target).Error; err != nil {
		return fmt.Errorf("save target: %w", err)
	}
	return nil
}

// UpdateProfile changes the display name and/or the password. A password
// change requires the current password, must differ from it, and when a
// confirmation is supplied both new values must match.
func (s *AccountService) UpdateProfile(userID uint, name, password, newPassword, checkNewPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	if name != "" && !nameFormat.MatchString(name) {
		return ErrInvalidName
	}

	if newPassword != "" {
		if !utils.CheckPasswordHash(password, user.Password) {
			return ErrPasswordMismatch
		}
		if checkNewPassword != "" && newPassword != checkNewPassword {
			return ErrConfirmationMismatch
		}
		if utils.CheckPasswordHash(newPassword, user.Password) {
			return ErrSamePassword
		}
		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = hash
	}

	if name != "" {
		user.Name = name
	}

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// DeleteAccount removes the account after confirming the password.
func (s *AccountService) DeleteAccount(userID uint, password string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return ErrPasswordMismatch
	}
	if err := s.db.Delete(&user).Error; err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// GetUser returns the public fields of an account.
func (s *AccountService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	return &user, nil
}

// MyPosts lists the requester's posts, newest first.
func (s *AccountService) MyPosts(userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// MyComments lists the requester's comments with the title of the post
// each one was written on.
func (s *AccountService) MyComments(userID uint) ([]MyComment, error) {
	var comments []models.Comment
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]MyComment, 0, len(comments))
	for _, c := range comments {
		title := "Deleted post"
		var post models.Post
		if err := s.db.Select("title").First(&post, c.PostID).Error; err == nil {
			title = post.Title
		}
		out = append(out, MyComment{
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			PostID:    c.PostID,
			PostTitle: title,
		})
	}
	return out, nil
}
