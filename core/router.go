package core

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// taskPayload is the create/update request body. The misspelled "tittle" key
// is accepted as a legacy alias for "title".
type taskPayload struct {
	Title     *string `json:"title"`
	Tittle    *string `json:"tittle"`
	Completed *bool   `json:"completed"`
}

// title returns the effective title field, preferring the correct spelling.
func (p taskPayload) title() (string, bool) {
	if p.Title != nil {
		return *p.Title, true
	}
	if p.Tittle != nil {
		return *p.Tittle, true
	}
	return "", false
}

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, authService *AuthService, tokens *TokenService, tasks TaskRepository, cache ListCache) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/signup", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}
		if errs := validateSignup(req.Username, req.Password); len(errs) > 0 {
			respondValidation(c, http.StatusBadRequest, errs)
			return
		}

		ctx := c.Request.Context()
		user, err := authService.Register(ctx, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, ErrDuplicateUsername) {
				respondError(c, http.StatusBadRequest, "DUPLICATE_USERNAME", "username already exists")
				return
			}
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create user")
			return
		}

		token, err := tokens.Issue(user.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to issue token")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "user created successfully",
			"token":   token,
			"user":    user,
		})
	})

	r.POST("/login", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
			return
		}

		token, err := tokens.Issue(user.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to issue token")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	authed := r.Group("/")
	authed.Use(RequireAuth(tokens))
	{
		authed.GET("/tasks", func(c *gin.Context) {
			userID, ok := authedUser(c)
			if !ok {
				return
			}

			ctx := c.Request.Context()
			if listing, hit := cache.Get(ctx, userID); hit {
				c.JSON(http.StatusOK, listing)
				return
			}

			listing, err := tasks.FindByOwner(ctx, userID)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch tasks")
				return
			}
			cache.Set(ctx, userID, listing)
			c.JSON(http.StatusOK, listing)
		})

		authed.POST("/tasks", func(c *gin.Context) {
			userID, ok := authedUser(c)
			if !ok {
				return
			}

			var req taskPayload
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}
			title, _ := req.title()
			if errs := validateTaskTitle(title); len(errs) > 0 {
				respondValidation(c, http.StatusBadRequest, errs)
				return
			}
			completed := false
			if req.Completed != nil {
				completed = *req.Completed
			}

			ctx := c.Request.Context()
			task, err := tasks.Create(ctx, strings.TrimSpace(title), completed, userID)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create task")
				return
			}
			cache.Invalidate(ctx, userID)
			c.JSON(http.StatusOK, gin.H{"task": task})
		})

		authed.GET("/tasks/:id", func(c *gin.Context) {
			if _, ok := authedUser(c); !ok {
				return
			}

			task, err := tasks.FindByID(c.Request.Context(), c.Param("id"))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "no task exists with the provided id")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch task")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message": "task retrieved successfully",
				"task":    task,
			})
		})

		authed.PUT("/tasks/:id", func(c *gin.Context) {
			if _, ok := authedUser(c); !ok {
				return
			}

			var req taskPayload
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}

			ctx := c.Request.Context()
			current, err := tasks.FindByID(ctx, c.Param("id"))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "no task exists with the provided id")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch task")
				return
			}

			// Partial update: unset fields keep their current values.
			title := current.Title
			if t, ok := req.title(); ok {
				if errs := validateTaskTitle(t); len(errs) > 0 {
					respondValidation(c, http.StatusBadRequest, errs)
					return
				}
				title = strings.TrimSpace(t)
			}
			completed := current.Completed
			if req.Completed != nil {
				completed = *req.Completed
			}

			updated, err := tasks.UpdateByID(ctx, current.ID, title, completed)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "no task exists with the provided id")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update task")
				return
			}
			cache.Invalidate(ctx, updated.OwnerID)
			c.JSON(http.StatusOK, gin.H{"task": updated})
		})

		authed.DELETE("/tasks/:id", func(c *gin.Context) {
			if _, ok := authedUser(c); !ok {
				return
			}

			ctx := c.Request.Context()
			task, err := tasks.FindByID(ctx, c.Param("id"))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "no task exists with the provided id")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch task")
				return
			}

			if err := tasks.DeleteByID(ctx, task.ID); err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "no task exists with the provided id")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete task")
				return
			}
			cache.Invalidate(ctx, task.OwnerID)
			c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
		})
	}

	return r
}
