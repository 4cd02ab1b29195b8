// Package gravatar реализует best-effort поиск аватара по email.
//
// Gravatar опрашивается один раз при регистрации; любая ошибка
// (нет аватара, таймаут, сеть) означает просто «аватара нет».
package gravatar

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client ходит в Gravatar за аватаром пользователя.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// URL проверяет, есть ли у email аватар в Gravatar, и возвращает ссылку.
//
// Хэш считается от email в нижнем регистре без пробелов по краям.
// Параметр d=404 заставляет Gravatar отвечать 404 вместо заглушки,
// если аватар не загружен.
func (c *Client) URL(ctx context.Context, email string) (string, error) {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	url := fmt.Sprintf("%s/avatar/%x?d=404", c.baseURL, hash)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gravatar: status %d", resp.StatusCode)
	}
	return url, nil
}
