// Command storefront is a scripted walkthrough of the client core
// against a running Demo Shop API: load the catalog, fill the cart,
// build a custom coffee and check out.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dombialcz/SevenTestsShop/common/logger"
	"github.com/dombialcz/SevenTestsShop/config"
	"github.com/dombialcz/SevenTestsShop/database"
	"github.com/dombialcz/SevenTestsShop/storefront/cart"
	"github.com/dombialcz/SevenTestsShop/storefront/catalog"
	"github.com/dombialcz/SevenTestsShop/storefront/checkout"
	"github.com/dombialcz/SevenTestsShop/storefront/coffee"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()
	log := logger.Log

	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}
	slot := cart.NewRedisSlot(redisClient, "", 7*24*time.Hour)

	ctx := context.Background()
	store := cart.NewStore(ctx, slot, log)
	store.Subscribe(func(items []cart.Item) {
		log.Info("Cart changed", zap.Int("entries", len(items)))
	})

	client := catalog.NewClient(baseURL, nil, log)
	page := catalog.NewPage(client, log)
	page.Load(ctx)

	products := page.Products()
	if len(products) == 0 {
		log.Fatal("No products in catalog; run cmd/seed first")
	}
	log.Info("Catalog loaded",
		zap.Int("products", len(products)),
		zap.Strings("categories", page.Categories()))

	coffees := catalog.FilterByCategory(products, "Coffee")
	if len(coffees) > 0 {
		store.AddItem(ctx, coffees[0], 2, nil)
	}

	builder := coffee.NewBuilder()
	builder.SetSize("large")
	builder.SetStrength(4)
	builder.SetSugar(1)
	custom, selections := builder.Finalize()
	store.AddItem(ctx, custom, 1, selections)

	log.Info("Cart ready",
		zap.Int("count", store.Count()),
		zap.Float64("total", store.Total()))

	workflow := checkout.NewWorkflow(store, client, cfg.NoticeDelay, log)
	defer workflow.Close()
	workflow.OnChange(func(state checkout.State, notice string) {
		log.Info("Checkout transition", zap.Stringer("state", state), zap.String("notice", notice))
	})

	if err := workflow.Begin(); err != nil {
		log.Fatal("Checkout unavailable", zap.Error(err))
	}
	if err := workflow.Confirm(ctx); err != nil {
		log.Fatal("Confirm rejected", zap.Error(err))
	}

	// wait out the success notice so the cart clear is observable
	time.Sleep(cfg.NoticeDelay + 500*time.Millisecond)
	log.Info("Done", zap.Int("cart_entries", store.Len()), zap.String("final_state", workflow.State().String()))
}
