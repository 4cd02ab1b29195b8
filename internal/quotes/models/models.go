// Package models описывает сущности сервиса цитат.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag — тег цитаты. Имя тега уникально.
type Tag struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Author — автор цитат.
type Author struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Fullname  string             `bson:"fullname" json:"fullname"`
	Born      string             `bson:"born,omitempty" json:"born,omitempty"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Quote — цитата со ссылкой на автора и списком тегов.
type Quote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"author_id"`
	Tags      []string           `bson:"tags" json:"tags"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// QuoteView — цитата с развёрнутым автором, как отдаётся наружу.
type QuoteView struct {
	ID     primitive.ObjectID `json:"id"`
	Text   string             `json:"text"`
	Author Author             `json:"author"`
	Tags   []string           `json:"tags"`
}

// Page — страница цитат.
type Page struct {
	Quotes   []QuoteView `json:"quotes"`
	Page     int         `json:"page"`
	Pages    int         `json:"pages"`
	Total    int64       `json:"total"`
	PageSize int         `json:"page_size"`
}
