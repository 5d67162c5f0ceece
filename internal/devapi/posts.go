package devapi

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/common"
)

type commentRequest struct {
	PostID  int64  `json:"postagem"`
	Title   string `json:"titulo"`
	Content string `json:"conteudo"`
}

// ListPosts serves ?search= and ?page= with {count, next, previous,
// results} pagination. next and previous are absolute URLs.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts := h.store.Posts(r.URL.Query().Get("search"), 0)

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeDetail(w, http.StatusNotFound, "Invalid page.")
			return
		}
		page = n
	}

	pages := (len(posts) + h.pageSize - 1) / h.pageSize
	if page > 1 && page > pages {
		writeDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}

	start := (page - 1) * h.pageSize
	end := min(start+h.pageSize, len(posts))

	out := models.Page[models.Post]{Count: len(posts), Results: posts[start:end]}
	if page < pages {
		out.Next = pageURL(r, page+1)
	}
	if page > 1 {
		out.Previous = pageURL(r, page-1)
	}
	writeJSON(w, http.StatusOK, out)
}

func pageURL(r *http.Request, page int) string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	if r.TLS != nil {
		u.Scheme = "https"
	}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// MyPosts returns the caller's posts as a bare array.
func (h *Handlers) MyPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Posts("", userIDFrom(r.Context())))
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, _, err := h.store.Post(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// postForm reads titulo, conteudo and the optional imagem part.
func (h *Handlers) postForm(w http.ResponseWriter, r *http.Request, partial bool) (title, content, image string, ok bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeDetail(w, http.StatusBadRequest, "Multipart form parse error")
		return "", "", "", false
	}

	title = strings.TrimSpace(r.FormValue("titulo"))
	content = strings.TrimSpace(r.FormValue("conteudo"))

	if !partial {
		errs := fieldErrors{}
		errs.required("titulo", title)
		errs.required("conteudo", content)
		if len(errs) > 0 {
			writeJSON(w, http.StatusBadRequest, errs)
			return "", "", "", false
		}
	}

	image, err := h.saveUpload(r, "imagem", "postagens")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"imagem": {"Upload a valid image."}})
		return "", "", "", false
	}
	return title, content, image, true
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	title, content, image, ok := h.postForm(w, r, false)
	if !ok {
		return
	}

	p, err := h.store.CreatePost(userIDFrom(r.Context()), title, content, image)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ownPost loads the post and answers 404 or 403 unless the caller wrote it.
func (h *Handlers) ownPost(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return 0, false
	}
	_, authorID, err := h.store.Post(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	if authorID != userIDFrom(r.Context()) {
		writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return 0, false
	}
	return id, true
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownPost(w, r)
	if !ok {
		return
	}
	title, content, image, ok := h.postForm(w, r, true)
	if !ok {
		return
	}

	p, err := h.store.UpdatePost(id, title, content, image)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownPost(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePost(id); err != nil && !errors.Is(err, common.ErrorNotFound) {
		h.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListComments returns the post's comments as a bare array.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	comments, err := h.store.Comments(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var in commentRequest
	if err := decodeStrict(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}

	errs := fieldErrors{}
	if in.PostID <= 0 {
		errs.add("postagem", "This field is required.")
	}
	errs.required("conteudo", strings.TrimSpace(in.Content))
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	c, err := h.store.CreateComment(in.PostID, userIDFrom(r.Context()), strings.TrimSpace(in.Title), strings.TrimSpace(in.Content))
	if errors.Is(err, common.ErrorNotFound) {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"postagem": {"Invalid pk - object does not exist."}})
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
