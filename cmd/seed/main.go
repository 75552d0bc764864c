package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dombialcz/SevenTestsShop/common/logger"
	"github.com/dombialcz/SevenTestsShop/config"
	"github.com/dombialcz/SevenTestsShop/database"
	"github.com/dombialcz/SevenTestsShop/models"
	"github.com/dombialcz/SevenTestsShop/repository"
)

var demoCategories = []string{"Coffee", "Tea", "Accessories"}

var demoProducts = []models.Product{
	{Name: "Espresso", Category: "Coffee", Price: 3.99, Description: "A strong single shot.", Image: "/images/espresso.jpg", InStock: true},
	{Name: "Cappuccino", Category: "Coffee", Price: 4.49, Description: "Espresso with steamed milk foam.", Image: "/images/cappuccino.jpg", InStock: true},
	{Name: "Flat White", Category: "Coffee", Price: 4.99, Description: "Velvety microfoam over a double shot.", Image: "/images/flat-white.jpg", InStock: true},
	{Name: "Green Tea", Category: "Tea", Price: 2.99, Description: "Delicate sencha leaves.", Image: "/images/green-tea.jpg", InStock: true},
	{Name: "Earl Grey", Category: "Tea", Price: 2.79, Description: "Black tea with bergamot.", Image: "/images/earl-grey.jpg", InStock: false},
	{Name: "Ceramic Mug", Category: "Accessories", Price: 8.99, Description: "350ml stoneware mug.", Image: "/images/mug.jpg", InStock: true},
	{Name: "French Press", Category: "Accessories", Price: 24.99, Description: "1L borosilicate press.", Image: "/images/french-press.jpg", InStock: true},
}

// Seed resets the demo catalog. Destructive on purpose: the demo shop
// always starts from the same data set.
func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	client, db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer database.Disconnect(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"products", "categories", "orders"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			logger.Log.Fatal("Failed to reset collection", zap.String("collection", name), zap.Error(err))
		}
	}

	for _, name := range demoCategories {
		if _, err := db.Collection("categories").InsertOne(ctx, models.Category{Name: name}); err != nil {
			logger.Log.Fatal("Failed to insert category", zap.String("name", name), zap.Error(err))
		}
	}

	repo := repository.NewMongoProductRepository(db)
	for i := range demoProducts {
		if err := repo.Insert(ctx, &demoProducts[i]); err != nil {
			logger.Log.Fatal("Failed to insert product", zap.String("name", demoProducts[i].Name), zap.Error(err))
		}
	}

	logger.Log.Info("Demo data seeded",
		zap.Int("categories", len(demoCategories)),
		zap.Int("products", len(demoProducts)))
}
