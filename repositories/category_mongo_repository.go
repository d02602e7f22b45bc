package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eshop/models"
)

// MongoCategoryRepository stores categories in a MongoDB collection.
type MongoCategoryRepository struct {
	categories *mongo.Collection
}

func NewMongoCategoryRepository(categories *mongo.Collection) *MongoCategoryRepository {
	return &MongoCategoryRepository{categories: categories}
}

func (r *MongoCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *MongoCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var category models.Category
	err = r.categories.FindOne(ctx, bson.M{"_id": objID}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *MongoCategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.ID = primitive.NewObjectID()
	if _, err := r.categories.InsertOne(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (r *MongoCategoryRepository) UpdateByID(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":  category.Name,
		"icon":  category.Icon,
		"color": category.Color,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Category
	err = r.categories.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoCategoryRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	result, err := r.categories.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
