package user

import (
	"net/http"

	"github.com/redmonkez12/profile-directory/internal/httputil"
	"github.com/redmonkez12/profile-directory/internal/logging"
)

// Handler contains HTTP handlers for the profile directory
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListProfiles handles listing every profile
// @Summary      List profiles
// @Description  Return all profiles, most recently registered first
// @Tags         profiles
// @Produce      json
// @Success      200 {array}  Profile
// @Failure      503 {object} httputil.ErrorResponse "Store unavailable"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/profiles [get]
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	profiles, err := h.service.ListAll(r.Context())
	if err != nil {
		logger.Error("failed to list profiles", "error", err.Error())
		httputil.RespondAppError(w, err)
		return
	}

	httputil.RespondJSON(w, profiles, http.StatusOK)
}

// Search handles profile search
// @Summary      Search profiles
// @Description  Case-insensitive substring search. A profile matches when its name or any skill contains query, or its city contains location. Both blank returns an empty list.
// @Tags         profiles
// @Produce      json
// @Param        query    query string false "Text matched against name and skills"
// @Param        location query string false "Text matched against city"
// @Success      200 {array}  Profile
// @Failure      503 {object} httputil.ErrorResponse "Store unavailable"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	query := r.URL.Query().Get("query")
	location := r.URL.Query().Get("location")

	profiles, err := h.service.Search(r.Context(), query, location)
	if err != nil {
		logger.Error("profile search failed", "error", err.Error())
		httputil.RespondAppError(w, err)
		return
	}

	logger.Debug("profile search", "query", query, "location", location, "results", len(profiles))
	httputil.RespondJSON(w, profiles, http.StatusOK)
}
