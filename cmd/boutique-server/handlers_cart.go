package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"boutique-backend/internal/cart"
	"boutique-backend/internal/httpx"
	"boutique-backend/internal/order"
)

func createCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body cart.ShoppingCart
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.ID != 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a new shopping cart cannot already have an id"})
			return
		}
		created, err := svc.Save(c.Request.Context(), &body)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Location", fmt.Sprintf("/api/shopping-carts/%d", created.ID))
		c.JSON(http.StatusCreated, created)
	}
}

func listCartsHandler(svc *cart.Service) gin.HandlerFunc {
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
			items = []cart.ShoppingCart{}
		}
		httpx.TotalCount(c, total)
		c.JSON(http.StatusOK, items)
	}
}

func getCartHandler(svc *cart.Service) gin.HandlerFunc {
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

func updateCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body cart.ShoppingCart
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shopping cart id is required"})
			return
		}
		if body.ID != id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed shopping cart"})
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

func patchCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var patch cart.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if patch.ID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shopping cart id is required"})
			return
		}
		if *patch.ID != id {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed shopping cart"})
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

func deleteCartHandler(svc *cart.Service) gin.HandlerFunc {
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

// listCustomerCartsHandler resolves the carts of one customer by lookup.
func listCustomerCartsHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		items, err := svc.FindByCustomerDetails(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		if items == nil {
			items = []cart.ShoppingCart{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// listCartOrdersHandler resolves the order lines of one cart by lookup.
func listCartOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		items, err := svc.FindByCart(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		if items == nil {
			items = []order.ProductOrder{}
		}
		c.JSON(http.StatusOK, items)
	}
}
