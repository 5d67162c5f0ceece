package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
)

const commentsPath = "/postagens/comentarios/"

type CommentService interface {
	ListForPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Create(ctx context.Context, postID int64, title, content string) (*models.Comment, error)
}

type commentService struct {
	client Doer
}

func NewCommentService(c Doer) CommentService {
	return &commentService{client: c}
}

func (s *commentService) ListForPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	if postID <= 0 {
		return nil, ErrInvalidID
	}
	resp, err := s.client.Do(ctx, &client.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("%s%d/comentarios/", postsPath, postID),
	})
	if err != nil {
		return nil, fmt.Errorf("list comments error: %w", err)
	}

	var page models.Page[models.Comment]
	if err := resp.Decode(&page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (s *commentService) Create(ctx context.Context, postID int64, title, content string) (*models.Comment, error) {
	if postID <= 0 {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}

	body := models.Comment{PostID: postID, Title: title, Content: content}
	resp, err := s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: commentsPath, Body: commentBody(body)})
	if err != nil {
		return nil, fmt.Errorf("create comment error: %w", err)
	}

	var out models.Comment
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// commentBody drops the read-only fields the backend fills in.
func commentBody(c models.Comment) map[string]any {
	return map[string]any{
		"postagem": c.PostID,
		"titulo":   c.Title,
		"conteudo": c.Content,
	}
}
