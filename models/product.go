package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Category    string             `json:"category" bson:"category"`
	Price       float64            `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	InStock     bool               `json:"inStock" bson:"inStock"`
}

type Category struct {
	ID   primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
}

// ProductUpdate is the admin price/stock update payload.
type ProductUpdate struct {
	Price   *float64 `json:"price" binding:"required"`
	InStock *bool    `json:"inStock" binding:"required"`
}
