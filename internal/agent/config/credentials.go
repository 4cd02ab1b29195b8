// Package config — локальная конфигурация CLI-клиента.
//
// Учётные данные (access/refresh токены) хранятся в файле:
//
//	~/.contactcli/credentials.json
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Credentials — сохранённые токены CLI-клиента.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// DefaultPath возвращает путь к файлу учётных данных:
//
//	<home>/.contactcli/credentials.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".contactcli", "credentials.json"), nil
}

// Load загружает учётные данные из файла.
//
// Если файла нет — возвращает пустые Credentials без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет учётные данные в файл (директория 0700, файл 0600).
func Save(path string, c *Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
