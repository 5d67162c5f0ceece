package devapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/constructhub/internal/devapi/config"
	"github.com/dmitrijs2005/constructhub/internal/devapi/store"
	"github.com/dmitrijs2005/constructhub/internal/logging"
	"github.com/go-chi/chi/v5"
)

// Handlers serves the REST endpoints over a Store.
type Handlers struct {
	store      *store.Store
	media      *mediaStore
	logger     logging.Logger
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	pageSize   int
}

func NewHandlers(s *store.Store, cfg *config.Config, logger logging.Logger) *Handlers {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Handlers{
		store:      s,
		media:      newMediaStore(),
		logger:     logger,
		secret:     []byte(cfg.SecretKey),
		accessTTL:  cfg.AccessTokenValidityDuration,
		refreshTTL: cfg.RefreshTokenValidityDuration,
		pageSize:   pageSize,
	}
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeDetail(w, http.StatusInternalServerError, "A server error occurred.")
}

// pathID parses the {id} route parameter. Non-numeric ids are reported as
// missing resources.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}
