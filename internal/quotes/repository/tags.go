package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// TagsRepository хранит теги цитат. Имя тега уникально
// (уникальный индекс по name).
type TagsRepository struct {
	coll *mongo.Collection
}

func NewTagsRepository(ctx context.Context, db *mongo.Database) (*TagsRepository, error) {
	coll := db.Collection(tagsCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("tags index: %w", err)
	}

	return &TagsRepository{coll: coll}, nil
}

// Create сохраняет новый тег.
//
// Ошибки:
//   - ErrAlreadyExists если тег с таким именем уже есть
func (r *TagsRepository) Create(ctx context.Context, name string) (models.Tag, error) {
	tag := models.Tag{Name: name}

	res, err := r.coll.InsertOne(ctx, tag)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Tag{}, serr.ErrAlreadyExists
		}
		return models.Tag{}, serr.ErrInternal
	}

	tag.ID = res.InsertedID.(primitive.ObjectID)
	return tag, nil
}

// GetByNames возвращает теги по точным именам.
func (r *TagsRepository) GetByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	cur, err := r.coll.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer cur.Close(ctx)

	var tags []models.Tag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, serr.ErrInternal
	}
	return tags, nil
}
