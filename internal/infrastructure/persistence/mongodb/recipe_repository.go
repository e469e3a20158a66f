package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/recipe"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// RecipeRepository persists generated recipes in the recipes collection.
type RecipeRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewRecipeRepository(db *mongo.Database, logger *zap.Logger) *RecipeRepository {
	return &RecipeRepository{
		collection: db.Collection(recipesCollection),
		logger:     logger,
	}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	doc, err := recipeToDoc(rec)
	if err != nil {
		return errors.NewBadRequestError("invalid recipe id")
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("failed to insert recipe", zap.Error(err))
		return errors.NewDatabaseError("insert recipe", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid.Hex()
	}
	return nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids behave the same as unknown ids.
		return nil, recipe.ErrNotFound
	}

	var doc recipeDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, recipe.ErrNotFound
		}
		r.logger.Error("failed to find recipe", zap.String("id", id), zap.Error(err))
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	oid, err := primitive.ObjectIDFromHex(rec.ID)
	if err != nil {
		return recipe.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":            rec.Name,
		"description":     rec.Description,
		"ingredientsUsed": rec.IngredientsUsed,
		"steps":           rec.Steps,
		"imageUrl":        rec.ImageURL,
		"rating":          rec.Rating,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		r.logger.Error("failed to update recipe", zap.String("id", rec.ID), zap.Error(err))
		return errors.NewDatabaseError("update recipe", err)
	}
	if result.MatchedCount == 0 {
		return recipe.ErrNotFound
	}
	return nil
}
