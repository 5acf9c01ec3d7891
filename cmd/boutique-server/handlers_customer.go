package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"boutique-backend/internal/customer"
	"boutique-backend/internal/httpx"
)

func createCustomerHandler(svc *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body customer.CustomerDetails
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.ID != 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "new customer details cannot already have an id"})
			return
		}
		created, err := svc.Save(c.Request.Context(), &body)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Location", fmt.Sprintf("/api/customer-details/%d", created.ID))
		c.JSON(http.StatusCreated, created)
	}
}

func listCustomersHandler(svc *customer.Service) gin.HandlerFunc {
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
			items = []customer.CustomerDetails{}
		}
		httpx.TotalCount(c, total)
		c.JSON(http.StatusOK, items)
	}
}

func getCustomerHandler(svc *customer.Service) gin.HandlerFunc {
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

func updateCustomerHandler(svc *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body customer.CustomerDetails
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer details id is required"})
			return
		}
		if body.ID != id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed customer details"})
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

func patchCustomerHandler(svc *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var patch customer.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if patch.ID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer details id is required"})
			return
		}
		if *patch.ID != id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed customer details"})
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

func deleteCustomerHandler(svc *customer.Service) gin.HandlerFunc {
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
