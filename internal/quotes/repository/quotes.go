package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// QuotesRepository хранит цитаты.
type QuotesRepository struct {
	coll *mongo.Collection
}

func NewQuotesRepository(db *mongo.Database) *QuotesRepository {
	return &QuotesRepository{coll: db.Collection(quotesCollection)}
}

// Create сохраняет новую цитату.
func (r *QuotesRepository) Create(ctx context.Context, text string, authorID primitive.ObjectID, tags []string) (models.Quote, error) {
	if tags == nil {
		tags = []string{}
	}
	quote := models.Quote{
		Text:      text,
		AuthorID:  authorID,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, quote)
	if err != nil {
		return models.Quote{}, serr.ErrInternal
	}

	quote.ID = res.InsertedID.(primitive.ObjectID)
	return quote, nil
}

// ListPaginated возвращает страницу цитат в порядке добавления.
func (r *QuotesRepository) ListPaginated(ctx context.Context, skip, limit int64) ([]models.Quote, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer cur.Close(ctx)

	quotes := []models.Quote{}
	if err := cur.All(ctx, &quotes); err != nil {
		return nil, serr.ErrInternal
	}
	return quotes, nil
}

// Count возвращает общее число цитат.
func (r *QuotesRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, serr.ErrInternal
	}
	return n, nil
}
