package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sproutly/sprout-backend/internal/config"
	"github.com/sproutly/sprout-backend/internal/db"
	"github.com/sproutly/sprout-backend/internal/model"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	uid := os.Getenv("SEED_UID")
	if uid == "" {
		uid = "demo-user"
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.User{}, &model.Habit{}, &model.HabitCompletion{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.WithContext(ctx).Model(&model.Habit{}).Where("user_uid = ?", uid).Count(&count).Error; err != nil {
		return fmt.Errorf("count habits: %w", err)
	}
	if count > 0 {
		log.Printf("habits already exist for %s; skipping seed", uid)
		return nil
	}

	user := model.User{UID: uid, Email: uid + "@example.com", Name: "Demo User"}
	if err := gdb.WithContext(ctx).Where("uid = ?", uid).FirstOrCreate(&user).Error; err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	habits := buildSeedHabits(uid)
	for i := range habits {
		if err := gdb.WithContext(ctx).Create(&habits[i]).Error; err != nil {
			return fmt.Errorf("seed habit %q: %w", habits[i].Name, err)
		}
	}
	log.Printf("seeded %d habits for %s", len(habits), uid)
	return nil
}

func buildSeedHabits(uid string) []model.Habit {
	return []model.Habit{
		{
			UserUID:      uid,
			Name:         "Morning walk",
			Description:  "Ten minutes outside before the first coffee.",
			Icon:         "🚶",
			Category:     model.CategoryFitness,
			IsActive:     true,
			ImpactAction: model.ActionPlantTree,
			ImpactAmount: 1,
		},
		{
			UserUID:      uid,
			Name:         "Refill the bottle",
			Description:  "Use the reusable bottle instead of buying plastic.",
			Icon:         "🍶",
			Category:     model.CategorySustainability,
			IsActive:     true,
			ImpactAction: model.ActionRescuePlastic,
			ImpactAmount: 2,
		},
		{
			UserUID:      uid,
			Name:         "Read ten pages",
			Description:  "Any book counts.",
			Icon:         "📚",
			Category:     model.CategoryLearning,
			IsActive:     true,
			ImpactAction: model.ActionProvideWater,
			ImpactAmount: 5,
		},
	}
}
