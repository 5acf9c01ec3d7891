package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"boutique-backend/internal/cart"
	"boutique-backend/internal/category"
	"boutique-backend/internal/customer"
	"boutique-backend/internal/httpx"
	"boutique-backend/internal/order"
	"boutique-backend/internal/product"
	"boutique-backend/internal/relsql"
	"boutique-backend/internal/user"
)

type services struct {
	users      *user.Service
	customers  *customer.Service
	carts      *cart.Service
	orders     *order.Service
	products   *product.Service
	categories *category.Service
}

func newRouter(s services, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api")

	carts := api.Group("/shopping-carts")
	carts.POST("", createCartHandler(s.carts))
	carts.GET("", listCartsHandler(s.carts))
	carts.GET("/:id", getCartHandler(s.carts))
	carts.PUT("/:id", updateCartHandler(s.carts))
	carts.PATCH("/:id", patchCartHandler(s.carts))
	carts.DELETE("/:id", deleteCartHandler(s.carts))
	carts.GET("/:id/product-orders", listCartOrdersHandler(s.orders))

	customers := api.Group("/customer-details")
	customers.POST("", createCustomerHandler(s.customers))
	customers.GET("", listCustomersHandler(s.customers))
	customers.GET("/:id", getCustomerHandler(s.customers))
	customers.PUT("/:id", updateCustomerHandler(s.customers))
	customers.PATCH("/:id", patchCustomerHandler(s.customers))
	customers.DELETE("/:id", deleteCustomerHandler(s.customers))
	customers.GET("/:id/shopping-carts", listCustomerCartsHandler(s.carts))

	orders := api.Group("/product-orders")
	orders.POST("", createOrderHandler(s.orders))
	orders.GET("", listOrdersHandler(s.orders))
	orders.GET("/:id", getOrderHandler(s.orders))
	orders.PUT("/:id", updateOrderHandler(s.orders))
	orders.PATCH("/:id", patchOrderHandler(s.orders))
	orders.DELETE("/:id", deleteOrderHandler(s.orders))

	products := api.Group("/products")
	products.POST("", createProductHandler(s.products))
	products.GET("", listProductsHandler(s.products))
	products.GET("/:id", getProductHandler(s.products))
	products.PUT("/:id", updateProductHandler(s.products))
	products.PATCH("/:id", patchProductHandler(s.products))
	products.DELETE("/:id", deleteProductHandler(s.products))

	categories := api.Group("/product-categories")
	categories.POST("", createCategoryHandler(s.categories))
	categories.GET("", listCategoriesHandler(s.categories))
	categories.GET("/:id", getCategoryHandler(s.categories))
	categories.PUT("/:id", updateCategoryHandler(s.categories))
	categories.PATCH("/:id", patchCategoryHandler(s.categories))
	categories.DELETE("/:id", deleteCategoryHandler(s.categories))

	users := api.Group("/users")
	users.POST("", createUserHandler(s.users))
	users.GET("", listUsersHandler(s.users))
	users.GET("/:id", getUserHandler(s.users))
	users.PUT("/:id", updateUserHandler(s.users))
	users.PATCH("/:id", patchUserHandler(s.users))
	users.DELETE("/:id", deleteUserHandler(s.users))

	return r
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// pageFromQuery reads ?page=&size=&sort=field,desc the way paging clients
// send them; list endpoints always page.
func pageFromQuery(c *gin.Context) *relsql.Page {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "0"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "20"), 10, 64)
	p := &relsql.Page{Limit: size, Offset: page * size, Sort: "id"}
	if sort := c.Query("sort"); sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		p.Sort = parts[0]
		p.Desc = len(parts) == 2 && parts[1] == "desc"
	}
	return p
}

var badRequestErrs = []error{
	cart.ErrIDSet, cart.ErrIDRequired, cart.ErrStatusInvalid, cart.ErrPaymentMethodInvalid,
	cart.ErrNegativePrice, cart.ErrPlacedDateRequired,
	customer.ErrIDSet, customer.ErrIDRequired, customer.ErrGenderInvalid, customer.ErrFieldsRequired,
	order.ErrIDSet, order.ErrIDRequired, order.ErrNegativeQuantity, order.ErrNegativePrice,
	product.ErrIDSet, product.ErrIDRequired, product.ErrNameRequired, product.ErrSizeInvalid,
	product.ErrNegativePrice,
	category.ErrIDSet, category.ErrIDRequired, category.ErrNameRequired,
	user.ErrIDSet, user.ErrIDRequired, user.ErrAlreadyExist,
}

var notFoundErrs = []error{
	cart.ErrNotFound, customer.ErrNotFound, order.ErrNotFound,
	product.ErrNotFound, category.ErrNotFound, user.ErrNotFound,
}

// writeError translates repository and validation failures to the boundary
// semantics: absence is 404, rejected input is 400, anything else is opaque.
func writeError(c *gin.Context, err error) {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
