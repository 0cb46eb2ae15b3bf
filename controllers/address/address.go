package addressControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/store"
)

type AddressInput struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

func addressID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
		return 0, false
	}
	return uint(id), true
}

// GET /api/addresses
func ListAddresses(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		addresses, err := st.ListAddresses(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /api/addresses
func CreateAddress(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID := middleware.UserID(c)
		address := models.Address{
			UserID:     userID,
			FullName:   input.FullName,
			Line1:      input.Line1,
			Line2:      input.Line2,
			City:       input.City,
			State:      input.State,
			Country:    input.Country,
			PostalCode: input.PostalCode,
			Phone:      input.Phone,
		}
		if err := st.CreateAddress(c.Request.Context(), &address); err != nil {
			respond.Error(c, err)
			return
		}

		if input.IsDefault {
			if err := st.SetDefaultAddress(c.Request.Context(), userID, address.ID); err != nil {
				respond.Error(c, err)
				return
			}
			address.IsDefault = true
		}
		c.JSON(http.StatusCreated, address)
	}
}

// PUT /api/addresses/:id
func UpdateAddress(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := addressID(c)
		if !ok {
			return
		}
		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := map[string]interface{}{
			"full_name":   input.FullName,
			"line1":       input.Line1,
			"line2":       input.Line2,
			"city":        input.City,
			"state":       input.State,
			"country":     input.Country,
			"postal_code": input.PostalCode,
			"phone":       input.Phone,
		}
		address, err := st.UpdateAddress(c.Request.Context(), middleware.UserID(c), id, updates)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// PUT /api/addresses/:id/default
func SetDefaultAddress(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := addressID(c)
		if !ok {
			return
		}
		userID := middleware.UserID(c)
		if err := st.SetDefaultAddress(c.Request.Context(), userID, id); err != nil {
			respond.Error(c, err)
			return
		}
		address, err := st.GetUserAddress(c.Request.Context(), userID, id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// DELETE /api/addresses/:id
func DeleteAddress(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := addressID(c)
		if !ok {
			return
		}
		if err := st.DeleteAddress(c.Request.Context(), middleware.UserID(c), id); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
