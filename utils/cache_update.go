package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sara-kerr/Ecommerce-MERN/cache"
	"github.com/Sara-kerr/Ecommerce-MERN/models"
)

// ProductCacheJob periodically refreshes the per-product detail cache
// so that detail reads keep hitting Redis between invalidations.
type ProductCacheJob struct {
	db       *mongo.Client
	database string
	interval time.Duration
}

// NewProductCacheJob creates the refresh job
func NewProductCacheJob(db *mongo.Client, database string, interval time.Duration) *ProductCacheJob {
	return &ProductCacheJob{db: db, database: database, interval: interval}
}

// Start launches the refresh loop in its own goroutine. It runs until
// the context is cancelled.
func (j *ProductCacheJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.refresh(ctx)
			}
		}
	}()
}

func (j *ProductCacheJob) refresh(ctx context.Context) {
	products := j.db.Database(j.database).Collection("products")

	cursor, err := products.Find(ctx, bson.M{})
	if err != nil {
		log.Warn().Err(err).Msg("fetching products for cache refresh")
		return
	}
	defer cursor.Close(ctx)

	var all []models.Product
	if err := cursor.All(ctx, &all); err != nil {
		log.Warn().Err(err).Msg("decoding products for cache refresh")
		return
	}

	for _, product := range all {
		key := fmt.Sprintf(cache.ProductDetailPattern, product.ID.Hex())
		if err := cache.Set(ctx, key, product, cache.DetailTTL); err != nil {
			log.Warn().Err(err).Str("product", product.ID.Hex()).Msg("refreshing product cache")
			return
		}
	}

	log.Debug().Int("products", len(all)).Msg("product cache refreshed")
}
