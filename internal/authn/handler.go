package authn

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/KarimovMurodilla/lead-management-system/internal/authz"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server/middleware"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server/respond"
	"github.com/KarimovMurodilla/lead-management-system/internal/users"
)

// Handler wires the authentication endpoints to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes reachable without a token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login/", h.login)
	rg.POST("/auth/refresh/", h.refresh)
}

// RegisterRoutes attaches routes behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout/", h.logout)
	rg.GET("/auth/verify/", h.verify)
	rg.POST("/auth/register/", h.register)
	rg.GET("/auth/profile/", h.profile)
	rg.PATCH("/auth/profile/", h.updateProfile)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    users.User `json:"user"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, requestErrors(err))
		return
	}

	pair, user, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "No active account found with the given credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "login failed", nil)
		return
	}

	respond.OK(c, loginResponse{Access: pair.Access, Refresh: pair.Refresh, User: user})
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, requestErrors(err))
		return
	}

	access, err := h.Svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Token is invalid or expired", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "refresh failed", nil)
		return
	}

	respond.OK(c, gin.H{"access": access})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		respond.Error(c, http.StatusBadRequest, "bad_request", "Invalid token", nil)
		return
	}

	if err := h.Svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "Invalid token", nil)
		return
	}

	respond.OK(c, gin.H{"message": "Successfully logged out"})
}

func (h *Handler) verify(c *gin.Context) {
	user, err := h.Svc.Profile(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	respond.OK(c, gin.H{"valid": true, "user": user})
}

type registerRequest struct {
	Username        string `json:"username" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

func (h *Handler) register(c *gin.Context) {
	// The route only requires authentication; staff is checked here so
	// non-staff callers get a 403 rather than a 401.
	if !authz.IsStaff(authz.FromContext(c)) {
		respond.Error(c, http.StatusForbidden, "forbidden", "Only staff members can create new accounts", nil)
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, requestErrors(err))
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, users.ErrExists) {
			respond.ValidationError(c, map[string]string{"username": "A user with that username already exists."})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "registration failed", nil)
		return
	}

	respond.Created(c, user)
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.Svc.Profile(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load profile", nil)
		return
	}
	respond.OK(c, user)
}

type profileUpdateRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, requestErrors(err))
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserIDFromContext(c), ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to update profile", nil)
		return
	}
	respond.OK(c, user)
}

var jsonFieldNames = map[string]string{
	"Username":        "username",
	"Email":           "email",
	"Password":        "password",
	"PasswordConfirm": "password_confirm",
	"FirstName":       "first_name",
	"LastName":        "last_name",
	"Refresh":         "refresh",
	"RefreshToken":    "refresh_token",
}

// requestErrors maps validator failures to per-field messages.
func requestErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "invalid request body"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldNames[fe.Field()]
		if field == "" {
			field = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "min":
			out[field] = "Value is too short."
		case "eqfield":
			out[field] = "Password fields do not match."
		default:
			out[field] = "Invalid value."
		}
	}
	return out
}
