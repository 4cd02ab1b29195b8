// Package service — бизнес-логика сервиса цитат.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// PageSize — размер страницы списка цитат.
const PageSize = 10

// TagsRepo — хранилище тегов.
type TagsRepo interface {
	Create(ctx context.Context, name string) (models.Tag, error)
	GetByNames(ctx context.Context, names []string) ([]models.Tag, error)
}

// AuthorsRepo — хранилище авторов.
type AuthorsRepo interface {
	Create(ctx context.Context, fullname, born, bio string) (models.Author, error)
	GetByFullname(ctx context.Context, fullname string) (models.Author, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Author, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Author, error)
}

// QuotesRepo — хранилище цитат.
type QuotesRepo interface {
	Create(ctx context.Context, text string, authorID primitive.ObjectID, tags []string) (models.Quote, error)
	ListPaginated(ctx context.Context, skip, limit int64) ([]models.Quote, error)
	Count(ctx context.Context) (int64, error)
}

// QuotesService — операции над цитатами, авторами и тегами.
type QuotesService struct {
	tags    TagsRepo
	authors AuthorsRepo
	quotes  QuotesRepo
}

func NewQuotesService(tags TagsRepo, authors AuthorsRepo, quotes QuotesRepo) *QuotesService {
	return &QuotesService{tags: tags, authors: authors, quotes: quotes}
}

// CreateTag создаёт тег. Имя тега уникально.
func (s *QuotesService) CreateTag(ctx context.Context, name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, fmt.Errorf("%w: имя тега обязательно", serr.ErrInvalidInput)
	}
	return s.tags.Create(ctx, name)
}

// CreateAuthor создаёт автора. Дубликаты имён допустимы: при создании
// цитаты автор ищется по имени, побеждает созданный первым.
func (s *QuotesService) CreateAuthor(ctx context.Context, fullname, born, bio string) (models.Author, error) {
	fullname = strings.TrimSpace(fullname)
	if fullname == "" {
		return models.Author{}, fmt.Errorf("%w: имя автора обязательно", serr.ErrInvalidInput)
	}
	return s.authors.Create(ctx, fullname, born, bio)
}

// GetAuthor возвращает автора по id.
func (s *QuotesService) GetAuthor(ctx context.Context, id string) (models.Author, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Author{}, fmt.Errorf("%w: некорректный id автора", serr.ErrInvalidInput)
	}
	return s.authors.GetByID(ctx, oid)
}

// CreateQuote создаёт цитату.
//
// Автор резолвится по полному имени; если авторов с таким именем несколько,
// берётся созданный первым. Теги, которых нет в справочнике, отбрасываются.
//
// Ошибки:
//   - ErrInvalidInput при пустом тексте или имени автора
//   - ErrNotFound если автор не найден
func (s *QuotesService) CreateQuote(ctx context.Context, text, authorFullname string, tags []string) (models.QuoteView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.QuoteView{}, fmt.Errorf("%w: текст цитаты обязателен", serr.ErrInvalidInput)
	}
	authorFullname = strings.TrimSpace(authorFullname)
	if authorFullname == "" {
		return models.QuoteView{}, fmt.Errorf("%w: автор обязателен", serr.ErrInvalidInput)
	}

	author, err := s.authors.GetByFullname(ctx, authorFullname)
	if err != nil {
		return models.QuoteView{}, err
	}

	known := []string{}
	if len(tags) > 0 {
		existing, err := s.tags.GetByNames(ctx, tags)
		if err != nil {
			return models.QuoteView{}, err
		}
		byName := make(map[string]bool, len(existing))
		for _, t := range existing {
			byName[t.Name] = true
		}
		for _, name := range tags {
			if byName[name] {
				known = append(known, name)
			}
		}
	}

	quote, err := s.quotes.Create(ctx, text, author.ID, known)
	if err != nil {
		return models.QuoteView{}, err
	}

	return models.QuoteView{
		ID:     quote.ID,
		Text:   quote.Text,
		Author: author,
		Tags:   quote.Tags,
	}, nil
}

// ListPage возвращает страницу цитат (нумерация страниц с 1)
// с развёрнутыми авторами.
func (s *QuotesService) ListPage(ctx context.Context, page int) (models.Page, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.quotes.Count(ctx)
	if err != nil {
		return models.Page{}, err
	}

	skip := int64(page-1) * PageSize
	quotes, err := s.quotes.ListPaginated(ctx, skip, PageSize)
	if err != nil {
		return models.Page{}, err
	}

	ids := make([]primitive.ObjectID, 0, len(quotes))
	seen := make(map[primitive.ObjectID]bool)
	for _, q := range quotes {
		if !seen[q.AuthorID] {
			seen[q.AuthorID] = true
			ids = append(ids, q.AuthorID)
		}
	}

	authors := map[primitive.ObjectID]models.Author{}
	if len(ids) > 0 {
		authors, err = s.authors.GetByIDs(ctx, ids)
		if err != nil {
			return models.Page{}, err
		}
	}

	views := make([]models.QuoteView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, models.QuoteView{
			ID:     q.ID,
			Text:   q.Text,
			Author: authors[q.AuthorID],
			Tags:   q.Tags,
		})
	}

	pages := int((total + PageSize - 1) / PageSize)

	return models.Page{
		Quotes:   views,
		Page:     page,
		Pages:    pages,
		Total:    total,
		PageSize: PageSize,
	}, nil
}
