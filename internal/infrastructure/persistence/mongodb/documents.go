package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
	"github.com/mealforge/mealforge/internal/domain/user"
)

// Document models mirror the domain entities with bson tags. The hex form
// of the ObjectID is the public id used in API paths and links.

type credentialDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	HashedPassword string             `bson:"hashedPassword"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func (d credentialDoc) toDomain() *user.Credential {
	return &user.Credential{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		HashedPassword: d.HashedPassword,
		CreatedAt:      d.CreatedAt,
	}
}

type recipeDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Description     string             `bson:"description,omitempty"`
	IngredientsUsed []string           `bson:"ingredientsUsed"`
	Steps           []string           `bson:"steps"`
	ImageURL        string             `bson:"imageUrl,omitempty"`
	Rating          *int               `bson:"rating,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func recipeToDoc(r *recipe.Recipe) (recipeDoc, error) {
	doc := recipeDoc{
		Name:            r.Name,
		Description:     r.Description,
		IngredientsUsed: r.IngredientsUsed,
		Steps:           r.Steps,
		ImageURL:        r.ImageURL,
		Rating:          r.Rating,
		CreatedAt:       r.CreatedAt,
	}
	if r.ID != "" {
		oid, err := primitive.ObjectIDFromHex(r.ID)
		if err != nil {
			return recipeDoc{}, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d recipeDoc) toDomain() *recipe.Recipe {
	return &recipe.Recipe{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Description:     d.Description,
		IngredientsUsed: d.IngredientsUsed,
		Steps:           d.Steps,
		ImageURL:        d.ImageURL,
		Rating:          d.Rating,
		CreatedAt:       d.CreatedAt,
	}
}

type historyDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Link      string             `bson:"link"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func historyToDoc(item *history.Item) (historyDoc, error) {
	doc := historyDoc{
		UserID:    item.UserID,
		Link:      item.Link,
		Text:      item.Text,
		CreatedAt: item.CreatedAt,
	}
	if item.ID != "" {
		oid, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			return historyDoc{}, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d historyDoc) toDomain() *history.Item {
	return &history.Item{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Link:      d.Link,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}
