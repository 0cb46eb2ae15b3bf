package adminControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/store"
)

type CreateGiftCardInput struct {
	Balance    float64 `json:"balance" binding:"required,gt=0"`
	ValidDays  int     `json:"valid_days"`
	CustomCode string  `json:"code"`
}

// POST /api/admin/giftcards
func CreateGiftCard(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateGiftCardInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		code := input.CustomCode
		if code == "" {
			code = "GC-" + strings.ToUpper(uuid.NewString()[:8])
		}

		card := models.GiftCard{
			Code:    code,
			Balance: input.Balance,
		}
		if input.ValidDays > 0 {
			card.ExpiresAt = time.Now().AddDate(0, 0, input.ValidDays)
		}
		if err := st.CreateGiftCard(c.Request.Context(), &card); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Gift card code already exists"})
			return
		}
		c.JSON(http.StatusCreated, card)
	}
}

// GET /api/admin/giftcards/:code
func GetGiftCard(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		card, err := st.GetGiftCard(c.Request.Context(), c.Param("code"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, card)
	}
}
