package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"mangahub/internal/config"
	"mangahub/internal/db"
	"mangahub/internal/model"
	"mangahub/internal/password"
)

// Seeds an admin user and a small starter catalog for local development.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Preferences{},
		&model.Series{},
		&model.Volume{},
		&model.Chapter{},
		&model.Page{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if err := seedAdmin(gormDB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedCatalog(gormDB); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Println("Seed completed")
}

func seedAdmin(gormDB *gorm.DB) error {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@mangahub.local")
	plaintext := getEnv("SEED_ADMIN_PASSWORD", "admin-password")

	var count int64
	if err := gormDB.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Admin user %s already exists, skipping", email)
		return nil
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:         email,
		PasswordHash:  hash,
		Role:          model.RoleAdmin,
		IsActive:      true,
		EmailVerified: true,
		Profile: &model.Profile{
			Username:    "admin",
			DisplayName: "Administrator",
		},
		Preferences: &model.Preferences{
			ReadingDirection: model.DirectionRTL,
			Theme:            "dark",
			PageFit:          "width",
		},
	}
	if err := gormDB.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user %s", email)
	return nil
}

func seedCatalog(gormDB *gorm.DB) error {
	var count int64
	if err := gormDB.Model(&model.Series{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Catalog already has %d series, skipping", count)
		return nil
	}

	series := &model.Series{
		Slug:        "blade-of-dawn",
		Title:       "Blade of Dawn",
		Description: "A wandering swordsman takes on one last contract.",
		Author:      "R. Sakai",
		Artist:      "R. Sakai",
		Status:      model.StatusOngoing,
	}
	if err := gormDB.Create(series).Error; err != nil {
		return err
	}

	volume := &model.Volume{
		SeriesID: series.ID,
		Number:   1,
		Title:    "The Contract",
	}
	if err := gormDB.Create(volume).Error; err != nil {
		return err
	}

	for i := 1; i <= 3; i++ {
		chapter := &model.Chapter{
			SeriesID:    series.ID,
			VolumeID:    &volume.ID,
			Number:      float64(i),
			Title:       fmt.Sprintf("Chapter %d", i),
			PublishedAt: time.Now().AddDate(0, 0, -7*(4-i)),
		}
		if err := gormDB.Create(chapter).Error; err != nil {
			return err
		}

		pages := make([]model.Page, 0, 20)
		for p := 1; p <= 20; p++ {
			pages = append(pages, model.Page{
				ChapterID: chapter.ID,
				Number:    p,
				ImageURL:  pageURL(series.Slug, i, p),
				Width:     1080,
				Height:    1536,
			})
		}
		if err := gormDB.Create(&pages).Error; err != nil {
			return err
		}
		if err := gormDB.Model(chapter).Update("page_count", len(pages)).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded series %q with 3 chapters", series.Title)
	return nil
}

func pageURL(slug string, chapter, page int) string {
	return fmt.Sprintf("https://cdn.mangahub.local/%s/ch%d/p%d.jpg", slug, chapter, page)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
