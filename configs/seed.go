package configs

import (
	"log"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seed the first admin account from env.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Admin",
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

// SeedCatalog creates a small starter catalog so a fresh install has
// something to render. No-op once any category exists.
func SeedCatalog() error {
	db := DB()

	var count int64
	db.Model(&entity.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	drinks := entity.Category{Name: "Drinks", SortOrder: 1}
	mains := entity.Category{Name: "Main Dishes", SortOrder: 2}
	if err := db.Create(&drinks).Error; err != nil {
		return err
	}
	if err := db.Create(&mains).Error; err != nil {
		return err
	}

	size := entity.ModifierGroup{
		Name: "Size", IsRequired: true, IsMultiple: false,
		MinSelection: 1, MaxSelection: 1,
		Items: []entity.ModifierItem{
			{Name: "Regular", Price: decimal.Zero, IsAvailable: true, SortOrder: 1},
			{Name: "Large", Price: decimal.NewFromInt(5000), IsAvailable: true, SortOrder: 2},
		},
	}
	if err := db.Create(&size).Error; err != nil {
		return err
	}

	latte := entity.MenuItem{
		Name:        "Latte",
		Price:       decimal.NewFromInt(23000),
		IsAvailable: true,
		CategoryID:  drinks.ID,
	}
	if err := db.Create(&latte).Error; err != nil {
		return err
	}
	if err := db.Model(&latte).Association("ModifierGroups").Append(&size); err != nil {
		return err
	}

	log.Println("starter catalog seeded")
	return nil
}
