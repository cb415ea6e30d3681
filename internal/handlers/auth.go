package handlers

import (
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository  repositories.UserRepository
	tokenRepository repositories.TokenRepository
	firebaseAuth    *auth.Client // nil when Firebase login is not configured
	jwtSecret       string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository:  userRepo,
		tokenRepository: tokenRepo,
		firebaseAuth:    firebaseAuthClient,
		jwtSecret:       jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/logout", h.Logout)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register handles local user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		if err == repositories.ErrEmailTaken {
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"success": true,
	})
}

// Login verifies credentials and issues a JWT
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	token, err := h.signToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome back " + user.Username,
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Logout revokes the presented token until its natural expiry. A request
// without a usable token still succeeds; there is nothing to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenString := bearerToken(c)
	if tokenString != "" {
		claims := &models.JwtCustomClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(h.jwtSecret), nil
		})
		if err == nil && token.Valid && claims.ExpiresAt != nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.tokenRepository.RevokeToken(c.Request().Context(), tokenString, ttl); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to revoke token")
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged out successfully.",
		"success": true,
	})
}

// FirebaseLogin verifies a Firebase ID token, provisions the account on
// first login and issues a local JWT.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.IDToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id_token is required")
	}

	decoded, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	user, err := h.userRepository.GetUserByFirebaseUID(c.Request().Context(), decoded.UID)
	if err == repositories.ErrUserNotFound {
		record, err := h.firebaseAuth.GetUser(c.Request().Context(), decoded.UID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch Firebase user")
		}
		user = &models.User{
			Username:    record.DisplayName,
			Email:       record.Email,
			FirebaseUID: decoded.UID,
		}
		if user.Username == "" {
			user.Username = record.Email
		}
		if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.signToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to sign token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome back " + user.Username,
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// signToken issues a 24h HS256 token for the user
func (h *AuthHandler) signToken(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// bearerToken extracts the raw token from the Authorization header
func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
