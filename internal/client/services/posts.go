package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/netx"
)

const (
	postsPath   = "/postagens/"
	myPostsPath = "/postagens/minhas/"
)

// PostInput is the editable part of a post. Image is optional.
type PostInput struct {
	Title   string
	Content string
	Image   *netx.File
}

func (in PostInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return ErrEmptyPost
	}
	return nil
}

func (in PostInput) form() *netx.Multipart {
	form := netx.NewMultipart().
		Set("titulo", in.Title).
		Set("conteudo", in.Content)
	if in.Image != nil {
		img := *in.Image
		img.Field = "imagem"
		form.AddFile(img)
	}
	return form
}

type PostService interface {
	List(ctx context.Context, search string, page int) (*models.Page[models.Post], error)
	Follow(ctx context.Context, link string) (*models.Page[models.Post], error)
	Mine(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, in PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, in PostInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	client Doer
}

func NewPostService(c Doer) PostService {
	return &postService{client: c}
}

func postPath(id int64) string {
	return postsPath + strconv.FormatInt(id, 10) + "/"
}

// List returns one page of the feed; page < 1 means the first page.
func (s *postService) List(ctx context.Context, search string, page int) (*models.Page[models.Post], error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return s.page(ctx, &client.Request{Method: http.MethodGet, Path: postsPath, Query: q})
}

// Follow loads a next/previous link returned by a previous page.
func (s *postService) Follow(ctx context.Context, link string) (*models.Page[models.Post], error) {
	if link == "" {
		return nil, fmt.Errorf("no such page")
	}
	return s.page(ctx, &client.Request{Method: http.MethodGet, Path: link})
}

func (s *postService) page(ctx context.Context, req *client.Request) (*models.Page[models.Post], error) {
	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list posts error: %w", err)
	}
	var out models.Page[models.Post]
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *postService) Mine(ctx context.Context) ([]models.Post, error) {
	p, err := s.page(ctx, &client.Request{Method: http.MethodGet, Path: myPostsPath})
	if err != nil {
		return nil, err
	}
	return p.Results, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	resp, err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: postPath(id)})
	if err != nil {
		return nil, fmt.Errorf("get post %d error: %w", id, err)
	}
	return decodePost(resp)
}

func (s *postService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	resp, err := s.client.Do(ctx, &client.Request{Method: http.MethodPost, Path: postsPath, Body: in.form()})
	if err != nil {
		return nil, fmt.Errorf("create post error: %w", err)
	}
	return decodePost(resp)
}

func (s *postService) Update(ctx context.Context, id int64, in PostInput) (*models.Post, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	resp, err := s.client.Do(ctx, &client.Request{Method: http.MethodPatch, Path: postPath(id), Body: in.form()})
	if err != nil {
		return nil, fmt.Errorf("update post %d error: %w", id, err)
	}
	return decodePost(resp)
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if _, err := s.client.Do(ctx, &client.Request{Method: http.MethodDelete, Path: postPath(id)}); err != nil {
		return fmt.Errorf("delete post %d error: %w", id, err)
	}
	return nil
}

func decodePost(resp *client.Response) (*models.Post, error) {
	var out models.Post
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
