package auth

import (
	"encoding/json"
	"net/http"

	"github.com/redmonkez12/profile-directory/internal/apperror"
	"github.com/redmonkez12/profile-directory/internal/httputil"
	"github.com/redmonkez12/profile-directory/internal/logging"
	"github.com/redmonkez12/profile-directory/internal/user"
)

const maxBodyBytes = 1 << 20

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	City       string `json:"city"`
	Skills     any    `json:"skills" swaggertype:"array,string"` // list or comma separated string
	Experience any    `json:"experience" swaggertype:"integer"`  // number or numeric string
	Portfolio  string `json:"portfolio"`
	ProfilePic string `json:"profilePic"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Message string       `json:"message"`
	User    user.Profile `json:"user"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a profile. Skills may be a list or a comma separated string; experience defaults to 0.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} httputil.ErrorResponse "User already exists"
// @Failure      503 {object} httputil.ErrorResponse "Store unavailable"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	id, err := h.service.Register(r.Context(), RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		City:       req.City,
		Skills:     req.Skills,
		Experience: req.Experience,
		Portfolio:  req.Portfolio,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		logFailure(logger, "registration failed", err)
		httputil.RespondAppError(w, err)
		return
	}

	logger.Info("user registered", "user_id", id)
	httputil.RespondJSON(w, RegisterResponse{
		Message: "user registered successfully",
		UserID:  id,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      Log in
// @Description  Check credentials and return the profile. No token is issued.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      503 {object} httputil.ErrorResponse "Store unavailable"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	profile, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logFailure(logger, "login failed", err)
		httputil.RespondAppError(w, err)
		return
	}

	logger.Info("user logged in", "user_id", profile.ID)
	httputil.RespondJSON(w, LoginResponse{
		Message: "login successful",
		User:    *profile,
	}, http.StatusOK)
}

// logFailure logs client errors at warn and everything else at error
func logFailure(logger *logging.Logger, msg string, err error) {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindConflict, apperror.KindAuth:
		logger.Warn(msg, "reason", apperror.KindOf(err).String(), "error", err.Error())
	default:
		logger.Error(msg, "error", err.Error())
	}
}
