package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop/models"
)

// MongoProductRepository stores products in a MongoDB collection and
// resolves category references against the categories collection.
type MongoProductRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

func NewMongoProductRepository(products, categories *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{products: products, categories: categories}
}

func (r *MongoProductRepository) List(ctx context.Context, categoryIDs []string) ([]models.Product, error) {
	filter := bson.M{}
	if len(categoryIDs) > 0 {
		ids := make([]primitive.ObjectID, 0, len(categoryIDs))
		for _, raw := range categoryIDs {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid category id %q", raw)
			}
			ids = append(ids, id)
		}
		filter["category"] = bson.M{"$in": ids}
	}

	cursor, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	if err := r.populate(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var product models.Product
	err = r.products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.populateOne(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = primitive.NewObjectID()
	product.DateCreated = time.Now()
	if product.Images == nil {
		product.Images = []string{}
	}

	if _, err := r.products.InsertOne(ctx, product); err != nil {
		return nil, err
	}

	if err := r.populateOne(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *MongoProductRepository) UpdateByID(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":            product.Name,
		"description":     product.Description,
		"richDescription": product.RichDescription,
		"image":           product.Image,
		"brand":           product.Brand,
		"price":           product.Price,
		"category":        product.CategoryID,
		"countInStock":    product.CountInStock,
		"rating":          product.Rating,
		"numReviews":      product.NumReviews,
		"isFeatured":      product.IsFeatured,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = r.products.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.populateOne(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoProductRepository) SetImages(ctx context.Context, id string, images []string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if images == nil {
		images = []string{}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = r.products.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"images": images}}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.populateOne(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoProductRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	result, err := r.products.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	return r.products.CountDocuments(ctx, bson.M{})
}

func (r *MongoProductRepository) ListFeatured(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.products.Find(ctx, bson.M{"isFeatured": true}, opts)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// populate resolves the category reference of each product with a single
// lookup against the categories collection.
func (r *MongoProductRepository) populate(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for i := range products {
		if id := products[i].CategoryID; !id.IsZero() && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return err
	}

	byID := map[primitive.ObjectID]*models.Category{}
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for i := range products {
		products[i].Category = byID[products[i].CategoryID]
	}
	return nil
}

func (r *MongoProductRepository) populateOne(ctx context.Context, product *models.Product) error {
	if product.CategoryID.IsZero() {
		return nil
	}

	var category models.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": product.CategoryID}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}
	product.Category = &category
	return nil
}
