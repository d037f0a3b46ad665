package routes

import (
	"errors"
	"fmt"
	"net/http"

	"tasknest/tasknest/database"
	"tasknest/tasknest/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	Refresh string       `json:"refresh"`
	User    userResponse `json:"user"`
}

func RegisterAuthRoutes(router *gin.Engine, db *database.Database, userService services.UserServiceInterface, authService services.AuthServiceInterface) {
	group := router.Group("/auth")
	{
		group.POST("/signup", func(c *gin.Context) { Signup(c, db, userService) })
		group.POST("/login", func(c *gin.Context) { Login(c, db, authService) })
	}
}

func Signup(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var request credentialsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required."})
		return
	}

	user, err := userService.CreateUser(db, request.Username, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required."})
		case errors.Is(err, services.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A user with this username already exists."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("User %s created successfully. Please log in to get your tokens.", user.Username),
	})
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request credentialsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required."})
		return
	}

	result, err := authService.Login(db, request.Username, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:   result.Token,
		Refresh: result.Refresh,
		User: userResponse{
			ID:       result.User.ID,
			Username: result.User.Username,
		},
	})
}
