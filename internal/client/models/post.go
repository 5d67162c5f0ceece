package models

import "time"

// Post mirrors the backend post resource. The wire names are the backend's.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"titulo"`
	Content   string    `json:"conteudo"`
	Author    string    `json:"autor"`
	Image     string    `json:"imagem,omitempty"`
	CreatedAt time.Time `json:"data_criacao"`
	UpdatedAt time.Time `json:"data_atualizacao"`
}

// Comment belongs to a post. Author is the numeric user id on the wire.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postagem,omitempty"`
	Title     string    `json:"titulo"`
	Content   string    `json:"conteudo"`
	Author    int64     `json:"autor,omitempty"`
	CreatedAt time.Time `json:"data_criacao"`
}
