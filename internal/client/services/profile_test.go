package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Me(t *testing.T) {
	fc := (&fakeClient{}).reply(`{"id":3,"username":"ana","email":"ana@example.com","profile_picture":"/media/p.png"}`)
	svc := NewProfileService(fc)

	p, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Profile{ID: 3, Username: "ana", Email: "ana@example.com", ProfilePicture: "/media/p.png"}, p)
	assert.Equal(t, "GET", fc.last(t).Method)
	assert.Equal(t, "/profiles/me/", fc.last(t).Path)
}

func TestProfileService_MeError(t *testing.T) {
	fc := (&fakeClient{}).fail(client.ErrSessionExpired)
	_, err := NewProfileService(fc).Me(context.Background())
	assert.ErrorIs(t, err, client.ErrSessionExpired)
}

func TestProfileService_Update(t *testing.T) {
	fc := (&fakeClient{}).reply(`{"username":"ana2","email":"ana@example.com"}`)
	svc := NewProfileService(fc)

	pic := &netx.File{Name: "me.png", ContentType: "image/png", Data: []byte("png")}
	p, err := svc.Update(context.Background(), ProfileUpdate{Username: "ana2", Picture: pic})
	require.NoError(t, err)
	assert.Equal(t, "ana2", p.Username)

	req := fc.last(t)
	assert.Equal(t, "PUT", req.Method)
	fields, files := formParts(t, req.Body)
	assert.Equal(t, map[string]string{"username": "ana2"}, fields)
	assert.Equal(t, map[string]string{"profile_picture": "me.png"}, files)
}
