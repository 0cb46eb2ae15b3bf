package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
	"github.com/OmNinave/E-commerce-sub001/middleware"
	"github.com/OmNinave/E-commerce-sub001/store"
)

type WishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /api/wishlist
func ListWishlist(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := st.ListWishlist(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /api/wishlist
func AddToWishlist(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input WishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := st.GetProduct(c.Request.Context(), input.ProductID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			respond.Error(c, err)
			return
		}

		item, err := st.AddWishlistItem(c.Request.Context(), middleware.UserID(c), input.ProductID)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is already in the wishlist"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /api/wishlist/:productId
func RemoveFromWishlist(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		if err := st.RemoveWishlistItem(c.Request.Context(), middleware.UserID(c), uint(productID)); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
	}
}
