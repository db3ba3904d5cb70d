package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/config"
	"github.com/septianhadinugroho/snack-iseng-service/middlewares"
	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/router"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedProducts(db)

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Expense{},
		&models.ExpenseItem{},
		&models.HistoryLog{},
		&models.PushSubscription{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedProducts mengisi katalog 6 varian tetap saat tabel masih kosong.
func seedProducts(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("Error counting products: %v", err)
		return
	}
	if count > 0 {
		return
	}

	variants := []string{"Balado", "BBQ", "Jagung Bakar", "Keju", "Original", "Pedas Bon Cabe"}
	for _, name := range variants {
		if err := db.Create(&models.Product{Name: name, Price: 5000}).Error; err != nil {
			utils.ErrorLogger.Printf("Error seeding product %s: %v", name, err)
		}
	}
	utils.InfoLogger.Printf("Seeded %d product variants", len(variants))
}
