package httpapi

import (
	"errors"
	"net/http"

	"github.com/avoronov/gatekeeper/internal/shared"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRegister(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Please provide username and password"})
		return
	}

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorValidation):
			c.JSON(http.StatusBadRequest, messageResponse{Message: "Please provide username and password"})
		case errors.Is(err, shared.ErrorLoginAlreadyExists):
			c.JSON(http.StatusConflict, messageResponse{Message: "Username already exists"})
		default:
			s.logger.Error(ctx, "registration failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, messageResponse{Message: "Server error"})
		}
		return
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName)
	c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

func (s *Server) handleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Please provide username and password"})
		return
	}

	token, user, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorUnauthorized) {
			// One message for wrong username and wrong password.
			c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"})
			return
		}
		s.logger.Error(ctx, "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, messageResponse{Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Username: user.UserName},
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, messageResponse{Message: "Not authorized, token failed"})
		return
	}

	user, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			c.JSON(http.StatusNotFound, messageResponse{Message: "User not found"})
			return
		}
		s.logger.Error(ctx, "profile lookup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, messageResponse{Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.UserName})
}
