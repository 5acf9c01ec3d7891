package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boutique-backend/internal/httpx"
	"boutique-backend/internal/user"
)

// createUserRequest is the registration payload.
type createUserRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func createUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body createUserRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.Login == "" || body.Email == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "login, email and password are required"})
			return
		}
		created, err := svc.Save(c.Request.Context(), &user.User{Login: body.Login, Email: body.Email}, body.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Location", "/api/users/"+created.ID)
		c.JSON(http.StatusCreated, created)
	}
}

func listUsersHandler(svc *user.Service) gin.HandlerFunc {
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
			items = []user.User{}
		}
		httpx.TotalCount(c, total)
		c.JSON(http.StatusOK, items)
	}
}

func getUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// updateUserHandler replaces login and email wholesale. The stored password
// hash is carried over: a full update never changes credentials, that goes
// through the patch payload's password field.
func updateUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body user.User
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if body.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
			return
		}
		if body.ID != c.Param("id") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed user"})
			return
		}
		if body.Login == "" || body.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "login and email are required"})
			return
		}
		current, err := svc.FindByID(c.Request.Context(), body.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		body.PasswordHash = current.PasswordHash
		updated, err := svc.Update(c.Request.Context(), &body)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func patchUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch user.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if patch.ID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
			return
		}
		if *patch.ID != c.Param("id") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload id does not match the addressed user"})
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

func deleteUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
