package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func text(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter_Defaults(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.Routes())

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(
		NewDomainGroup("catalog", "/catalog").GET("/products", text("products")),
		NewDomainGroup("cart", "/cart").
			GET("", text("cart")).
			DELETE("/items/:product_id", func(c *gin.Context) {
				c.String(http.StatusOK, "removed "+c.Param("product_id"))
			}),
	)
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/catalog/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "products", w.Body.String())

	w = serve(engine, http.MethodGet, "/api/v1/cart")
	assert.Equal(t, "cart", w.Body.String())

	w = serve(engine, http.MethodDelete, "/api/v1/cart/items/42")
	assert.Equal(t, "removed 42", w.Body.String())

	w = serve(engine, http.MethodGet, "/catalog/products")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroup_EveryMethod(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(NewDomainGroup("posts", "/posts").
		GET("/:id", text("get")).
		POST("", text("post")).
		PUT("/:id", text("put")).
		PATCH("/:id", text("patch")).
		DELETE("/:id", text("delete")))
	r.Setup()

	assert.Equal(t, "post", serve(engine, http.MethodPost, "/api/v1/posts").Body.String())
	for method, want := range map[string]string{
		http.MethodGet:    "get",
		http.MethodPut:    "put",
		http.MethodPatch:  "patch",
		http.MethodDelete: "delete",
	} {
		assert.Equal(t, want, serve(engine, method, "/api/v1/posts/7").Body.String(), method)
	}
}

func TestDomainGroup_MiddlewareScope(t *testing.T) {
	var calls []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			calls = append(calls, name)
			c.Next()
		}
	}

	engine := gin.New()
	r := NewRouter(engine)
	blog := NewDomainGroup("blog", "/blog").Use(mark("blog")).GET("/posts", text("posts"))
	blog.Group("readers", "").Use(mark("reader")).GET("/bookmarks", text("bookmarks"))
	r.Register(blog, NewDomainGroup("info", "/info").GET("/faq", text("faq")))
	r.Setup()

	serve(engine, http.MethodGet, "/api/v1/blog/posts")
	assert.Equal(t, []string{"blog"}, calls)

	calls = nil
	serve(engine, http.MethodGet, "/api/v1/blog/bookmarks")
	assert.Equal(t, []string{"blog", "reader"}, calls)

	calls = nil
	serve(engine, http.MethodGet, "/api/v1/info/faq")
	assert.Empty(t, calls)
}

func TestDomainGroup_SharedPrefix(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }

	engine := gin.New()
	r := NewRouter(engine)
	r.Register(
		NewDomainGroup("coupons", "/coupons").POST("/apply", text("applied")),
		NewDomainGroup("coupons-admin", "/coupons").Use(deny).GET("", text("list")),
	)
	r.Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/coupons/apply").Code)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/coupons").Code)
}

func TestRouter_Routes(t *testing.T) {
	r := NewRouter(gin.New())
	account := NewDomainGroup("account", "/account").GET("/addresses", text(""))
	account.Group("wishlist", "/wishlist").POST("/:product_id", text("")).DELETE("", text(""))
	r.Register(account, NewDomainGroup("system", "/system").GET("/ping", text("")))

	assert.Equal(t, []Route{
		{Group: "account", Method: http.MethodGet, Path: "/api/v1/account/addresses"},
		{Group: "wishlist", Method: http.MethodPost, Path: "/api/v1/account/wishlist/:product_id"},
		{Group: "wishlist", Method: http.MethodDelete, Path: "/api/v1/account/wishlist"},
		{Group: "system", Method: http.MethodGet, Path: "/api/v1/system/ping"},
	}, r.Routes())
}

func TestRouter_RoutesMatchEngine(t *testing.T) {
	engine, _ := shopEngine(t, nil)
	require.NotEmpty(t, engine.Routes())

	r := NewRouter(gin.New())
	RegisterShopRoutes(r, shopHandlers(), Access{})

	listed := map[string]bool{}
	for _, rt := range r.Routes() {
		listed[rt.Method+" "+rt.Path] = true
	}
	for _, rt := range engine.Routes() {
		assert.True(t, listed[rt.Method+" "+rt.Path], "route %s %s not listed", rt.Method, rt.Path)
	}
	assert.Len(t, listed, len(engine.Routes()))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/api/v1", joinPath("/api/v1", ""))
	assert.Equal(t, "/api/v1/cart", joinPath("/api/v1", "/cart"))
	assert.Equal(t, "/api/v1/cart/", joinPath("/api/v1", "/cart/"))
	assert.Equal(t, "/api/v1/items/:id", joinPath("/api/v1/", "items/:id"))
}
