package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"boutique-backend/internal/category"
	"boutique-backend/internal/httpx"
)

func createCategoryHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body category.ProductCategory
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.ID != 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a new product category cannot already have an id"})
			return
		}
		created, err := svc.Save(c.Request.Context(), &body)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Location", fmt.Sprintf("/api/product-categories/%d", created.ID))
		c.JSON(http.StatusCreated, created)
	}
}

func listCategoriesHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := svc.Count(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		items, err := svc.FindAll(c.Request.Context(), pageFromQuery(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if items == nil {
			items = []category.ProductCategory{}
		}
		httpx.TotalCount(c, total)
		c.JSON(http.StatusOK, items)
	}
}

func getCategoryHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		found, err := svc.FindByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

func updateCategoryHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body category.ProductCategory
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product category id is required"})
			return
		}
		if body.ID != id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed product category"})
			return
		}
		updated, err := svc.Update(c.Request.Context(), &body)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func patchCategoryHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var patch category.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if patch.ID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product category id is required"})
			return
		}
		if *patch.ID != id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed product category"})
			return
		}
		merged, err := svc.PartialUpdate(c.Request.Context(), patch)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, merged)
	}
}

func deleteCategoryHandler(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
