package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/auth"
	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/store"
)

type UpdateUserInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// GET /api/user
func GetUser(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := st.GetUser(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /api/user
func UpdateUser(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}

		userID := middleware.UserID(c)
		if err := st.UpdateUser(c.Request.Context(), userID, updates); err != nil {
			respond.Error(c, err)
			return
		}

		user, err := st.GetUser(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /api/user/password
func ChangePassword(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID := middleware.UserID(c)
		user, err := st.GetUser(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}

		if !auth.CheckPassword(user.PasswordHash, input.CurrentPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}

		hash, err := auth.HashPassword(input.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
			return
		}
		if err := st.UpdateUser(c.Request.Context(), userID, map[string]interface{}{"password_hash": hash}); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
