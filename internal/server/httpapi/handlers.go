package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credkeeper/credkeeper/internal/common"
	"github.com/credkeeper/credkeeper/internal/server/passwd"
)

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}

	err := s.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		var violations passwd.Violations
		switch {
		case errors.As(err, &violations):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      "POLICY_VIOLATION",
				"message":    "password does not satisfy the policy",
				"violations": violations,
			})
		case errors.Is(err, common.ErrUsernameTaken):
			respondError(c, http.StatusConflict, "USERNAME_TAKEN", "username already taken")
		case errors.Is(err, common.ErrPasswordMismatch):
			respondError(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "password confirmation does not match")
		case errors.Is(err, common.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, "INVALID_EMAIL", "invalid email address")
		case errors.Is(err, common.ErrInvalidUsername):
			respondError(c, http.StatusBadRequest, "INVALID_USERNAME", "invalid username")
		case errors.Is(err, common.ErrStoreUnavailable):
			respondError(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "temporary failure, retry later")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}

	token, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			// Same status, code, and body whether the username is unknown
			// or the password is wrong.
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
		case errors.Is(err, common.ErrTooManyAttempts):
			respondError(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "too many login attempts, retry later")
		case errors.Is(err, common.ErrStoreUnavailable):
			respondError(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "temporary failure, retry later")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleMe(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": claims.Subject,
		"roles":   claims.Roles,
	})
}
