package repository

import (
	"context"

	"github.com/dombialcz/SevenTestsShop/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProductRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
	}
}

func (r *MongoProductRepository) List(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" && category != "All" {
		filter["category"] = category
	}

	cursor, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, price float64, inStock bool) (*models.Product, error) {
	update := bson.M{"$set": bson.M{"price": price, "inStock": inStock}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.products.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) Insert(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.products.InsertOne(ctx, p)
	return err
}

// Categories returns the category names from the categories collection,
// falling back to the distinct categories on products when the
// collection is empty.
func (r *MongoProductRepository) Categories(ctx context.Context) ([]string, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.Category
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	if len(docs) > 0 {
		names := make([]string, 0, len(docs))
		for _, c := range docs {
			names = append(names, c.Name)
		}
		return names, nil
	}

	raw, err := r.products.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	return names, nil
}
