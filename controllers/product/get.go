package productControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/OmNinave/E-commerce-sub001/controllers/respond"
	"github.com/OmNinave/E-commerce-sub001/store"
)

// GET /api/products?category=&page=&page_size=
func GetProducts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, _ := strconv.ParseUint(c.DefaultQuery("category", "0"), 10, 32)
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		products, err := st.ListProducts(c.Request.Context(), uint(categoryID), page, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id
func GetProductByID(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		product, err := st.GetProduct(c.Request.Context(), uint(id))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /api/categories
func GetCategories(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := st.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
