package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// Ограничения на поля контакта (совпадают с varchar-лимитами схемы).
const (
	contactNameMaxLen  = 50
	contactEmailMaxLen = 100
	contactPhoneMaxLen = 100
)

// ContactsService — бизнес-логика контактов. Владелец (ownerID) берётся
// из access-токена и пробрасывается в каждый вызов репозитория, поэтому
// пользователь физически не может дотянуться до чужих контактов.
type ContactsService struct {
	repo ContactsRepo

	// now подменяется в тестах дней рождения.
	now func() time.Time
}

func NewContactsService(repo ContactsRepo) *ContactsService {
	return &ContactsService{repo: repo, now: time.Now}
}

func validateContact(data models.ContactData) error {
	if strings.TrimSpace(data.FirstName) == "" {
		return fmt.Errorf("%w: first_name обязателен", serr.ErrInvalidInput)
	}
	if utf8.RuneCountInString(data.FirstName) > contactNameMaxLen {
		return fmt.Errorf("%w: first_name длиннее %d символов", serr.ErrInvalidInput, contactNameMaxLen)
	}
	if utf8.RuneCountInString(data.LastName) > contactNameMaxLen {
		return fmt.Errorf("%w: last_name длиннее %d символов", serr.ErrInvalidInput, contactNameMaxLen)
	}
	if strings.TrimSpace(data.Email) == "" {
		return fmt.Errorf("%w: email обязателен", serr.ErrInvalidInput)
	}
	if utf8.RuneCountInString(data.Email) > contactEmailMaxLen {
		return fmt.Errorf("%w: email длиннее %d символов", serr.ErrInvalidInput, contactEmailMaxLen)
	}
	if utf8.RuneCountInString(data.Phone) > contactPhoneMaxLen {
		return fmt.Errorf("%w: phone длиннее %d символов", serr.ErrInvalidInput, contactPhoneMaxLen)
	}
	if data.Birthday.IsZero() {
		return fmt.Errorf("%w: birthday обязателен", serr.ErrInvalidInput)
	}
	return nil
}

// List возвращает страницу контактов владельца в порядке добавления.
func (s *ContactsService) List(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]models.Contact, error) {
	if skip < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: skip/limit некорректны", serr.ErrInvalidInput)
	}
	return s.repo.List(ctx, ownerID, skip, limit)
}

// Find ищет первый подходящий контакт по подстрочным фильтрам.
// Хотя бы один фильтр должен быть задан.
func (s *ContactsService) Find(ctx context.Context, ownerID uuid.UUID, firstName, lastName, email *string) (models.Contact, error) {
	if firstName == nil && lastName == nil && email == nil {
		return models.Contact{}, fmt.Errorf("%w: нужен хотя бы один фильтр", serr.ErrInvalidInput)
	}
	return s.repo.Find(ctx, ownerID, firstName, lastName, email)
}

// Create сохраняет новый контакт владельца.
func (s *ContactsService) Create(ctx context.Context, ownerID uuid.UUID, data models.ContactData) (models.Contact, error) {
	if err := validateContact(data); err != nil {
		return models.Contact{}, err
	}
	return s.repo.Create(ctx, ownerID, data)
}

// Update полностью перезаписывает поля контакта владельца.
func (s *ContactsService) Update(ctx context.Context, ownerID uuid.UUID, id int64, data models.ContactData) (models.Contact, error) {
	if err := validateContact(data); err != nil {
		return models.Contact{}, err
	}
	return s.repo.Update(ctx, ownerID, id, data)
}

// Remove удаляет контакт владельца и возвращает удалённую запись.
func (s *ContactsService) Remove(ctx context.Context, ownerID uuid.UUID, id int64) (models.Contact, error) {
	return s.repo.Remove(ctx, ownerID, id)
}

// UpcomingBirthdays возвращает контакты, у которых день рождения
// в ближайшие 7 дней, включая сегодня. Год рождения игнорируется.
func (s *ContactsService) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID) ([]models.Contact, error) {
	return s.repo.UpcomingBirthdays(ctx, ownerID, s.now())
}
