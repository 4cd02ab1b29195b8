package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// contactColumns — полный набор колонок контакта в порядке scanContact.
const contactColumns = `id, first_name, last_name, email, phone, birthday, user_id, created_at`

// ContactsRepository реализует доступ к хранилищу контактов (PostgreSQL).
//
// Каждый контакт принадлежит ровно одному пользователю: ВСЕ запросы —
// чтение, поиск, изменение, удаление — фильтруют по user_id владельца.
// Контакт чужого пользователя неотличим от несуществующего (ErrNotFound).
type ContactsRepository struct {
	db *sql.DB
}

func NewContactsRepository(db *sql.DB) *ContactsRepository {
	return &ContactsRepository{db: db}
}

func scanContact(row interface{ Scan(dest ...any) error }) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Birthday, &c.UserID, &c.CreatedAt)
	return c, err
}

// List возвращает контакты владельца в порядке вставки (id ASC)
// со смещением skip и лимитом limit.
//
// Пустой результат — не ошибка: возвращается пустой срез.
func (r *ContactsRepository) List(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+`
		   FROM contacts
		  WHERE user_id = $1
		  ORDER BY id
		 OFFSET $2 LIMIT $3`,
		ownerID, skip, limit,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, serr.ErrInternal
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return contacts, nil
}

// Find ищет первый контакт владельца по подстрочному совпадению полей
// (ILIKE %...%, без учёта регистра). Ненулевые фильтры объединяются по AND.
//
// Фильтр по владельцу применяется всегда, независимо от набора полей.
//
// Ошибки:
//   - ErrNotFound если ни один контакт не подошёл
//   - ErrInternal при ошибке БД
func (r *ContactsRepository) Find(ctx context.Context, ownerID uuid.UUID, firstName, lastName, email *string) (models.Contact, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1`)
	args := []any{ownerID}

	if firstName != nil {
		args = append(args, "%"+*firstName+"%")
		fmt.Fprintf(&b, " AND first_name ILIKE $%d", len(args))
	}
	if lastName != nil {
		args = append(args, "%"+*lastName+"%")
		fmt.Fprintf(&b, " AND last_name ILIKE $%d", len(args))
	}
	if email != nil {
		args = append(args, "%"+*email+"%")
		fmt.Fprintf(&b, " AND email ILIKE $%d", len(args))
	}

	b.WriteString(" ORDER BY id LIMIT 1")

	c, err := scanContact(r.db.QueryRowContext(ctx, b.String(), args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Contact{}, serr.ErrNotFound
		}
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// Create сохраняет новый контакт владельца и возвращает его с присвоенным id.
func (r *ContactsRepository) Create(ctx context.Context, ownerID uuid.UUID, data models.ContactData) (models.Contact, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone, birthday, user_id)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING `+contactColumns,
		data.FirstName, data.LastName, data.Email, data.Phone, data.Birthday, ownerID,
	)

	c, err := scanContact(row)
	if err != nil {
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// Update перезаписывает все изменяемые поля контакта, найденного по (id, owner),
// и возвращает обновлённый контакт.
//
// Ошибки:
//   - ErrNotFound если контакта нет или он принадлежит другому пользователю
//   - ErrInternal при ошибке БД
func (r *ContactsRepository) Update(ctx context.Context, ownerID uuid.UUID, id int64, data models.ContactData) (models.Contact, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE contacts
		    SET first_name = $3,
		        last_name  = $4,
		        email      = $5,
		        phone      = $6,
		        birthday   = $7
		  WHERE id = $1 AND user_id = $2
		 RETURNING `+contactColumns,
		id, ownerID,
		data.FirstName, data.LastName, data.Email, data.Phone, data.Birthday,
	)

	c, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Contact{}, serr.ErrNotFound
		}
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// Remove удаляет контакт, найденный по (id, owner), и возвращает удалённую запись.
//
// Ошибки:
//   - ErrNotFound если контакта нет или он принадлежит другому пользователю
//   - ErrInternal при ошибке БД
func (r *ContactsRepository) Remove(ctx context.Context, ownerID uuid.UUID, id int64) (models.Contact, error) {
	row := r.db.QueryRowContext(ctx,
		`DELETE FROM contacts
		  WHERE id = $1 AND user_id = $2
		 RETURNING `+contactColumns,
		id, ownerID,
	)

	c, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Contact{}, serr.ErrNotFound
		}
		return models.Contact{}, serr.ErrInternal
	}
	return c, nil
}

// birthdayWindowDays — окно «ближайших» дней рождения: [today, today+7]
// включительно, всего 8 календарных дней.
const birthdayWindowDays = 8

// BirthdayWindowKeys возвращает ключи MMDD для всех дней окна
// [today, today+birthdayWindowDays), независимо от года.
//
// Проекция на ключи месяц+день корректно переживает переход через
// границу года: окно 29.12—04.01 даст ключи 1229..1231, 0101..0104.
// 29 февраля попадает в ключи только если окно реально содержит
// 29 февраля текущего (високосного) года.
func BirthdayWindowKeys(today time.Time) []string {
	keys := make([]string, 0, birthdayWindowDays)
	for i := 0; i < birthdayWindowDays; i++ {
		keys = append(keys, today.AddDate(0, 0, i).Format("0102"))
	}
	return keys
}

// UpcomingBirthdays возвращает контакты владельца, чей день рождения
// (сравнение по месяцу и дню, без учёта года) попадает в окно
// [today, today+7] включительно.
func (r *ContactsRepository) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, today time.Time) ([]models.Contact, error) {
	keys := BirthdayWindowKeys(today)

	placeholders := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	args = append(args, ownerID)
	for i, k := range keys {
		args = append(args, k)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	query := `SELECT ` + contactColumns + `
		   FROM contacts
		  WHERE user_id = $1
		    AND to_char(birthday, 'MMDD') IN (` + strings.Join(placeholders, ",") + `)
		  ORDER BY to_char(birthday, 'MMDD')`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, serr.ErrInternal
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return contacts, nil
}
