package handler

import (
	"log"
	"net/http"

	"chatapp/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SaveUser upserts a user profile by UID.
func (h *Handler) SaveUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil || user.UID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
		return
	}

	existing, err := h.Storage.GetUserByID(user.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
		return
	}
	if existing != nil {
		existing.Name = user.Name
		existing.PhotoURL = user.PhotoURL
		existing.Provider = user.Provider
		if user.Email != "" {
			existing.Email = user.Email
		}
		user = *existing
	}

	if err := h.Storage.SaveUser(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
		return
	}
	log.Printf("Saved user: %s", user.UID)
	c.JSON(http.StatusOK, user)
}

// GetAllUsers lists user profiles, optionally excluding one UID and
// optionally filtering by a name query.
func (h *Handler) GetAllUsers(c *gin.Context) {
	exclude := c.Query("excludeUserId")
	name := c.Query("name")

	var (
		users []models.User
		err   error
	)
	if name != "" {
		users, err = h.Storage.SearchUsersByName(name, exclude)
	} else {
		users, err = h.Storage.GetAllUsers(exclude)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID returns one user profile.
func (h *Handler) GetUserByID(c *gin.Context) {
	user, err := h.Storage.GetUserByID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// TestUsers probes the user store connection.
func (h *Handler) TestUsers(c *gin.Context) {
	count, err := h.Storage.CountUsers()
	if err != nil {
		c.String(http.StatusOK, "User service working, but database connection failed: %v", err)
		return
	}
	c.String(http.StatusOK, "User service working! Total users: %d", count)
}
