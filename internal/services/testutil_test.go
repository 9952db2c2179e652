package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"schoolhub/internal/models"
	"schoolhub/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One named in-memory database per test so parallel tests stay apart
	// while gorm's pooled connections share state.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Competition{},
		&models.Competitor{},
		&models.Point{},
		&models.File{},
		&models.UserFile{},
		&models.PostFile{},
		&models.CommentFile{},
	))
	return db
}

// fakeMailer records sent mails instead of hitting SMTP.
type fakeMailer struct {
	verifications []string
	resets        []string
	err           error
}

func (m *fakeMailer) SendVerificationEmail(to, token string) error {
	if m.err != nil {
		return m.err
	}
	m.verifications = append(m.verifications, token)
	return nil
}

func (m *fakeMailer) SendPasswordResetEmail(to, token string) error {
	if m.err != nil {
		return m.err
	}
	m.resets = append(m.resets, token)
	return nil
}

func testTokens() *TokenService {
	return NewTokenServiceWithSecrets("test-access", "test-refresh")
}

// seedUser inserts a verified account and returns it.
func seedUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password1")
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedPost inserts a post on a fresh board.
func seedPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	board := models.Board{Name: "general-" + title}
	require.NoError(t, db.Create(&board).Error)
	post := models.Post{
		UserID:  userID,
		BoardID: board.ID,
		Title:   title,
		Content: "content",
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func expiredAt(d time.Duration) *time.Time {
	at := time.Now().Add(-d)
	return &at
}
