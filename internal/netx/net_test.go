package netx

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipart_EncodeRoundTrip(t *testing.T) {
	m := NewMultipart().
		Set("titulo", "Laje").
		Set("conteudo", "Concretagem amanhã").
		AddFile(File{Field: "imagem", Name: "laje.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}})

	body, ct, err := m.Encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll()

	require.Equal(t, []string{"Laje"}, form.Value["titulo"])
	require.Equal(t, []string{"Concretagem amanhã"}, form.Value["conteudo"])

	fh := form.File["imagem"]
	require.Len(t, fh, 1)
	require.Equal(t, "laje.png", fh[0].Filename)
	require.Equal(t, "image/png", fh[0].Header.Get("Content-Type"))

	f, err := fh[0].Open()
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestMultipart_DefaultContentType(t *testing.T) {
	var m Multipart
	m.AddFile(File{Field: "profile_picture", Name: "me", Data: []byte("x")})
	m.Set("username", "ana")

	body, ct, err := m.Encode()
	require.NoError(t, err)
	require.Contains(t, ct, "boundary=")
	require.Contains(t, string(body), "Content-Type: application/octet-stream")
	require.Contains(t, string(body), `name="username"`)
}
