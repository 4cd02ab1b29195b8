// Методы клиента для эндпоинтов контактов.
package api

import (
	"fmt"
	"net/url"
)

// Contact — контакт, как его отдаёт сервер.
type Contact struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	CreatedAt string `json:"created_at"`
}

// ContactRequest — тело создания/обновления контакта.
type ContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"` // YYYY-MM-DD
}

// ListContacts возвращает страницу контактов.
func (c *Client) ListContacts(accessToken string, skip, limit int) ([]Contact, error) {
	var resp []Contact
	path := fmt.Sprintf("/api/contacts/?skip=%d&limit=%d", skip, limit)
	err := c.GetJSON(path, &resp, accessToken)
	return resp, err
}

// CreateContact создаёт контакт.
func (c *Client) CreateContact(accessToken string, req ContactRequest) (Contact, error) {
	var resp Contact
	err := c.PostJSON("/api/contacts/", req, &resp, accessToken)
	return resp, err
}

// FindContact ищет первый контакт по подстрочным фильтрам.
// Пустые фильтры не передаются. Сегмент id в пути сервер игнорирует,
// фильтрация идёт только по query-параметрам.
func (c *Client) FindContact(accessToken, firstName, lastName, email string) (Contact, error) {
	q := url.Values{}
	if firstName != "" {
		q.Set("first_name", firstName)
	}
	if lastName != "" {
		q.Set("last_name", lastName)
	}
	if email != "" {
		q.Set("email", email)
	}

	var resp Contact
	err := c.GetJSON("/api/contacts/0?"+q.Encode(), &resp, accessToken)
	return resp, err
}

// UpdateContact полностью перезаписывает поля контакта.
func (c *Client) UpdateContact(accessToken string, id int64, req ContactRequest) (Contact, error) {
	var resp Contact
	err := c.PutJSON(fmt.Sprintf("/api/contacts/%d", id), req, &resp, accessToken)
	return resp, err
}

// RemoveContact удаляет контакт и возвращает удалённую запись.
func (c *Client) RemoveContact(accessToken string, id int64) (Contact, error) {
	var resp Contact
	err := c.DeleteJSON(fmt.Sprintf("/api/contacts/%d", id), &resp, accessToken)
	return resp, err
}

// UpcomingBirthdays возвращает контакты с днём рождения в ближайшую неделю.
func (c *Client) UpcomingBirthdays(accessToken string) ([]Contact, error) {
	var resp []Contact
	err := c.GetJSON("/api/contacts/upcoming-birthdays", &resp, accessToken)
	return resp, err
}
