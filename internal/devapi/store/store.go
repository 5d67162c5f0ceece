// Package store keeps the dev API's users, posts and comments in memory.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/common"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	Picture      string
}

// Profile is the public view of u.
func (u User) Profile() models.Profile {
	return models.Profile{ID: u.ID, Username: u.Username, Email: u.Email, ProfilePicture: u.Picture}
}

type post struct {
	models.Post
	authorID int64
}

// Store is safe for concurrent use. Ids are assigned sequentially per kind,
// starting at 1.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]*User
	posts    map[int64]*post
	comments map[int64]*models.Comment
	lastID   struct{ user, post, comment int64 }
}

func New() *Store {
	return &Store{
		users:    map[int64]*User{},
		posts:    map[int64]*post{},
		comments: map[int64]*models.Comment{},
	}
}

// CreateUser fails with common.ErrorAlreadyExists when the username or the
// email (case-insensitive) is taken.
func (s *Store) CreateUser(username, email string, hash []byte) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(0, username, email); err != nil {
		return User{}, err
	}

	s.lastID.user++
	u := &User{ID: s.lastID.user, Username: username, Email: email, PasswordHash: hash}
	s.users[u.ID] = u
	return *u, nil
}

func (s *Store) checkUnique(self int64, username, email string) error {
	for _, u := range s.users {
		if u.ID == self {
			continue
		}
		if username != "" && u.Username == username {
			return fmt.Errorf("username %q: %w", username, common.ErrorAlreadyExists)
		}
		if email != "" && strings.EqualFold(u.Email, email) {
			return fmt.Errorf("email %q: %w", email, common.ErrorAlreadyExists)
		}
	}
	return nil
}

func (s *Store) User(id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, common.ErrorNotFound)
	}
	return *u, nil
}

func (s *Store) UserByEmail(email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return *u, nil
		}
	}
	return User{}, fmt.Errorf("user %q: %w", email, common.ErrorNotFound)
}

// UpdateUser changes the non-empty fields of the given user.
func (s *Store) UpdateUser(id int64, username, email, picture string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, common.ErrorNotFound)
	}
	if err := s.checkUnique(id, username, email); err != nil {
		return User{}, err
	}

	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	if picture != "" {
		u.Picture = picture
	}
	for _, p := range s.posts {
		if p.authorID == id {
			p.Author = u.Username
		}
	}
	return *u, nil
}

// Posts returns posts newest first. A non-empty search matches title or
// content case-insensitively; a non-zero authorID keeps only that author's
// posts.
func (s *Store) Posts(search string, authorID int64) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if authorID != 0 && p.authorID != authorID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Content), needle) {
			continue
		}
		out = append(out, p.Post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Post returns the post and the id of its author.
func (s *Store) Post(id int64) (models.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, 0, fmt.Errorf("post %d: %w", id, common.ErrorNotFound)
	}
	return p.Post, p.authorID, nil
}

func (s *Store) CreatePost(authorID int64, title, content, image string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[authorID]
	if !ok {
		return models.Post{}, fmt.Errorf("user %d: %w", authorID, common.ErrorNotFound)
	}

	now := time.Now().UTC()
	s.lastID.post++
	p := &post{
		Post: models.Post{
			ID:        s.lastID.post,
			Title:     title,
			Content:   content,
			Author:    u.Username,
			Image:     image,
			CreatedAt: now,
			UpdatedAt: now,
		},
		authorID: authorID,
	}
	s.posts[p.ID] = p
	return p.Post, nil
}

// UpdatePost changes the non-empty fields of the post.
func (s *Store) UpdatePost(id int64, title, content, image string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, fmt.Errorf("post %d: %w", id, common.ErrorNotFound)
	}
	if title != "" {
		p.Title = title
	}
	if content != "" {
		p.Content = content
	}
	if image != "" {
		p.Image = image
	}
	p.UpdatedAt = time.Now().UTC()
	return p.Post, nil
}

// DeletePost removes the post together with its comments.
func (s *Store) DeletePost(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("post %d: %w", id, common.ErrorNotFound)
	}
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

// Comments returns the comments of a post, oldest first.
func (s *Store) Comments(postID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, fmt.Errorf("post %d: %w", postID, common.ErrorNotFound)
	}
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateComment(postID, authorID int64, title, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return models.Comment{}, fmt.Errorf("post %d: %w", postID, common.ErrorNotFound)
	}

	s.lastID.comment++
	c := &models.Comment{
		ID:        s.lastID.comment,
		PostID:    postID,
		Title:     title,
		Content:   content,
		Author:    authorID,
		CreatedAt: time.Now().UTC(),
	}
	s.comments[c.ID] = c
	return *c, nil
}
