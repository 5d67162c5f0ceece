// Package services contains application services for the ConstructHub client.
//
// Each service is a thin, typed layer over client.Client: it builds the
// request for one backend resource, decodes the reply into models, and adds
// the few client-side checks the screens used to do (required fields, a
// positive area, a plausible estimate). Token handling stays in the client.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
)

var (
	ErrInvalidArea  = errors.New("area must be greater than zero")
	ErrEmptyPost    = errors.New("title and content are required")
	ErrEmptyComment = errors.New("comment content is required")
	ErrInvalidID    = errors.New("id must be positive")
)

// Doer is the part of client.Client that resource services need.
type Doer interface {
	Do(ctx context.Context, req *client.Request) (*client.Response, error)
}
