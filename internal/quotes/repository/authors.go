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

// AuthorsRepository хранит авторов цитат.
type AuthorsRepository struct {
	coll *mongo.Collection
}

func NewAuthorsRepository(db *mongo.Database) *AuthorsRepository {
	return &AuthorsRepository{coll: db.Collection(authorsCollection)}
}

// Create сохраняет нового автора и возвращает его с присвоенным id.
func (r *AuthorsRepository) Create(ctx context.Context, fullname, born, bio string) (models.Author, error) {
	author := models.Author{
		Fullname:  fullname,
		Born:      born,
		Bio:       bio,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, author)
	if err != nil {
		return models.Author{}, serr.ErrInternal
	}

	author.ID = res.InsertedID.(primitive.ObjectID)
	return author, nil
}

// GetByFullname возвращает автора по точному полному имени.
// При нескольких тёзках берётся созданный первым.
//
// Ошибки:
//   - ErrNotFound если автора нет
func (r *AuthorsRepository) GetByFullname(ctx context.Context, fullname string) (models.Author, error) {
	var author models.Author
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	err := r.coll.FindOne(ctx, bson.M{"fullname": fullname}, opts).Decode(&author)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Author{}, serr.ErrNotFound
		}
		return models.Author{}, serr.ErrInternal
	}
	return author, nil
}

// GetByID возвращает автора по id.
//
// Ошибки:
//   - ErrNotFound если автора нет
func (r *AuthorsRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Author, error) {
	var author models.Author
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&author)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Author{}, serr.ErrNotFound
		}
		return models.Author{}, serr.ErrInternal
	}
	return author, nil
}

// GetByIDs возвращает авторов по списку id (для развёртки страниц цитат).
func (r *AuthorsRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Author, error) {
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer cur.Close(ctx)

	authors := make(map[primitive.ObjectID]models.Author)
	for cur.Next(ctx) {
		var a models.Author
		if err := cur.Decode(&a); err != nil {
			return nil, serr.ErrInternal
		}
		authors[a.ID] = a
	}
	if err := cur.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return authors, nil
}
