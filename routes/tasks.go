package routes

import (
	"errors"
	"net/http"

	"tasknest/tasknest/database"
	"tasknest/tasknest/middleware"
	"tasknest/tasknest/models"
	"tasknest/tasknest/services"
	"tasknest/tasknest/utils/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const overdueMessage = "These tasks are overdue."

func RegisterTaskRoutes(router *gin.Engine, db *database.Database, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	group := router.Group("/api/tasks", middleware.AuthMiddleware(authService))
	{
		group.GET("/list", func(c *gin.Context) { ListTasks(c, db, taskService) })
		group.GET("/overdue", func(c *gin.Context) { ListOverdueTasks(c, db, taskService) })
		group.POST("/create", func(c *gin.Context) { CreateTask(c, db, taskService) })
		group.GET("/:id/", func(c *gin.Context) { GetTaskById(c, db, taskService) })
		group.PATCH("/:id/update/", func(c *gin.Context) { UpdateTask(c, db, taskService) })
		group.DELETE("/:id/delete/", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userIDInterface.(uuid.UUID), true
}

func taskFilterFromQuery(c *gin.Context, params pagination.Params) services.TaskFilter {
	return services.TaskFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}
}

func ListTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := pagination.FromContext(c)
	tasks, count, err := taskService.GetTasks(db, userID, taskFilterFromQuery(c, params))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		return
	}

	c.JSON(http.StatusOK, pagination.NewPage(c, params, count, tasks))
}

func ListOverdueTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := pagination.FromContext(c)
	tasks, count, err := taskService.GetOverdueTasks(db, userID, taskFilterFromQuery(c, params))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		return
	}

	results := models.OverdueList{
		Message: overdueMessage,
		Tasks:   tasks,
	}
	c.JSON(http.StatusOK, pagination.NewPage(c, params, count, results))
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdTask, err := taskService.CreateTask(db, userID, input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		return
	}
	c.JSON(http.StatusCreated, createdTask)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.GetTaskById(db, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		return
	}
	c.JSON(http.StatusOK, task)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch services.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedTask, err := taskService.UpdateTask(db, userID, c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		}
		return
	}
	c.JSON(http.StatusOK, updatedTask)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, userID, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unknown error occurred."})
		return
	}
	c.Status(http.StatusNoContent)
}
