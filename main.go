package main

import (
	"fmt"
	"log"

	"github.com/mhusainh/ScanDine-sub000/configs"
	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/middlewares"
	"github.com/mhusainh/ScanDine-sub000/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// join table (many2many MenuItem<->ModifierGroup)
	if err := db.SetupJoinTable(&entity.MenuItem{}, "ModifierGroups", &entity.MenuItemModifierGroup{}); err != nil {
		log.Fatalf("setup join table failed: %v", err)
	}

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedCatalog(); err != nil {
		log.Fatalf("seed catalog failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
