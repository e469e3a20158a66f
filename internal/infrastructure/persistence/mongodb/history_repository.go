package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// HistoryRepository persists history items in the history_items collection.
// Listings are newest first.
type HistoryRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewHistoryRepository(db *mongo.Database, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		collection: db.Collection(historyCollection),
		logger:     logger,
	}
}

var _ outbound.HistoryRepository = (*HistoryRepository)(nil)

func (r *HistoryRepository) Create(ctx context.Context, item *history.Item) error {
	doc, err := historyToDoc(item)
	if err != nil {
		return errors.NewBadRequestError("invalid history item id")
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("failed to insert history item", zap.Error(err))
		return errors.NewDatabaseError("insert history item", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

func (r *HistoryRepository) FindByID(ctx context.Context, id string) (*history.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, history.ErrNotFound
	}

	var doc historyDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, history.ErrNotFound
		}
		r.logger.Error("failed to find history item", zap.String("id", id), zap.Error(err))
		return nil, errors.NewDatabaseError("find history item", err)
	}
	return doc.toDomain(), nil
}

func (r *HistoryRepository) FindByUser(ctx context.Context, userID string) ([]*history.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		r.logger.Error("failed to list history items", zap.String("userID", userID), zap.Error(err))
		return nil, errors.NewDatabaseError("list history items", err)
	}
	defer cursor.Close(ctx)

	items := []*history.Item{}
	for cursor.Next(ctx) {
		var doc historyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.NewDatabaseError("decode history item", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.NewDatabaseError("iterate history items", err)
	}
	return items, nil
}

func (r *HistoryRepository) Update(ctx context.Context, item *history.Item) error {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return history.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"link": item.Link,
		"text": item.Text,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		r.logger.Error("failed to update history item", zap.String("id", item.ID), zap.Error(err))
		return errors.NewDatabaseError("update history item", err)
	}
	if result.MatchedCount == 0 {
		return history.ErrNotFound
	}
	return nil
}

func (r *HistoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return history.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("failed to delete history item", zap.String("id", id), zap.Error(err))
		return errors.NewDatabaseError("delete history item", err)
	}
	if result.DeletedCount == 0 {
		return history.ErrNotFound
	}
	return nil
}
