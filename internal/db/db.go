package db

import (
	"log"
	"os"
	"schoolhub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=schoolhub port=5432 sslmode=disable"
	}

	var err error
	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey,
	// which the like service relies on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
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
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedBoards()
}

func seedBoards() {
	var count int64
	DB.Model(&models.Board{}).Count(&count)
	if count > 0 {
		log.Println("Boards already seeded, skipping")
		return
	}

	boards := []models.Board{
		{Name: "announcement"},
		{Name: "general"},
		{Name: "curriculum"},
		{Name: "suggestion"},
		{Name: "sports"},
	}
	for i := range boards {
		if err := DB.Create(&boards[i]).Error; err != nil {
			log.Printf("Failed to create board %s: %v", boards[i].Name, err)
		}
	}

	byName := make(map[string]uint, len(boards))
	for _, b := range boards {
		byName[b.Name] = b.ID
	}

	categories := []models.Category{
		{BoardID: byName["general"], Name: "school"},
		{BoardID: byName["general"], Name: "academic"},
		{BoardID: byName["curriculum"], Name: "physics"},
		{BoardID: byName["curriculum"], Name: "biology"},
		{BoardID: byName["sports"], Name: "soccer"},
		{BoardID: byName["sports"], Name: "baseball"},
	}
	for _, c := range categories {
		if err := DB.Create(&c).Error; err != nil {
			log.Printf("Failed to create category %s: %v", c.Name, err)
		}
	}
	log.Println("Initial boards and categories created")
}
