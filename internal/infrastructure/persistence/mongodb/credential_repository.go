package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/user"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// CredentialRepository persists user credentials in the user_credentials
// collection. A unique index on username backs the duplicate check.
type CredentialRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewCredentialRepository(db *mongo.Database, logger *zap.Logger) *CredentialRepository {
	return &CredentialRepository{
		collection: db.Collection(credentialsCollection),
		logger:     logger,
	}
}

var _ outbound.CredentialRepository = (*CredentialRepository)(nil)

func (r *CredentialRepository) Create(ctx context.Context, cred *user.Credential) error {
	doc := credentialDoc{
		Username:       cred.Username,
		HashedPassword: cred.HashedPassword,
		CreatedAt:      cred.CreatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.ErrAlreadyExists
		}
		r.logger.Error("failed to insert credential", zap.Error(err))
		return errors.NewDatabaseError("insert credential", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cred.ID = oid.Hex()
	}
	return nil
}

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*user.Credential, error) {
	var doc credentialDoc
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, user.ErrNotFound
		}
		r.logger.Error("failed to find credential", zap.Error(err))
		return nil, errors.NewDatabaseError("find credential", err)
	}
	return doc.toDomain(), nil
}
