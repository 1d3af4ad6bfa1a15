package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/xlance-app/xlance-backend/internal/config"
	"github.com/xlance-app/xlance-backend/internal/db"
	"github.com/xlance-app/xlance-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var categories = []string{
	"Web Development",
	"Graphic Design",
	"Writing",
	"Digital Marketing",
	"Video Editing",
	"Music & Audio",
	"Data Science",
}

type seedGig struct {
	Title        string
	Description  string
	Price        int64
	DeliveryDays int
	Category     string
}

var sampleGigs = []seedGig{
	{"I will build a responsive landing page", "A fast, mobile-first landing page with your branding, contact form and analytics wired in.", 120, 3, "Web Development"},
	{"I will design a minimalist logo", "Three concepts, unlimited revisions on the chosen one, vector files delivered.", 45, 2, "Graphic Design"},
	{"I will write SEO blog posts", "1000-word researched article in your niche with keyword placement and meta description.", 30, 2, "Writing"},
	{"I will set up your ad campaigns", "Campaign structure, audience research and two weeks of optimization included.", 200, 5, "Digital Marketing"},
	{"I will edit your YouTube video", "Cuts, color grading, captions and thumbnail. Up to 15 minutes of footage.", 80, 3, "Video Editing"},
	{"I will mix and master your track", "Radio-ready mix with two revision rounds. Stems in, master out.", 150, 4, "Music & Audio"},
	{"I will build a dashboard for your data", "Cleaning, modeling and an interactive dashboard over your dataset.", 250, 7, "Data Science"},
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	if err := gdb.WithContext(ctx).AutoMigrate(&model.Category{}, &model.Gig{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, name := range categories {
		cat := model.Category{Name: name}
		if err := gdb.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&cat).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	log.Printf("seeded %d categories", len(categories))

	sellerUID := os.Getenv("SEED_SELLER_UID")
	if sellerUID == "" {
		log.Printf("SEED_SELLER_UID not set; skipping sample gigs")
		return nil
	}

	var existing int64
	if err := gdb.WithContext(ctx).Model(&model.Gig{}).
		Where("seller_uid = ?", sellerUID).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("count gigs: %w", err)
	}
	if existing > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("gigs already exist for %s; skipping (set FORCE_SEED=true to override)", sellerUID)
		return nil
	}

	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sg := range sampleGigs {
			gig := model.Gig{
				SellerUID:    sellerUID,
				Title:        sg.Title,
				Description:  sg.Description,
				Price:        sg.Price,
				DeliveryDays: sg.DeliveryDays,
				Category:     sg.Category,
				Status:       model.GigStatusActive,
			}
			if err := tx.Create(&gig).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed gigs: %w", err)
	}
	log.Printf("seeded %d gigs for %s", len(sampleGigs), sellerUID)
	return nil
}
