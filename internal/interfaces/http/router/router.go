package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes on a versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Route describes one registered endpoint relative to the API prefix
type Route struct {
	Group  string
	Method string
	Path   string
}

// Router mounts route groups under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	groups     []*DomainGroup
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the API prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router serving /api/v1 unless configured otherwise
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup. Domain groups are also listed by Routes.
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	for _, reg := range registrars {
		if g, ok := reg.(*DomainGroup); ok {
			r.groups = append(r.groups, g)
		}
		r.registrars = append(r.registrars, reg)
	}
	return r
}

// BasePath is the prefix every registered route lives under
func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Setup mounts every registrar on the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath())
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
}

// Routes lists the endpoints of the registered domain groups in
// registration order
func (r *Router) Routes() []Route {
	var routes []Route
	for _, g := range r.groups {
		routes = g.collect(r.BasePath(), routes)
	}
	return routes
}

// DomainGroup collects the routes of one module under a shared prefix and
// middleware chain. Groups with the same prefix may coexist.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	subgroups  []*DomainGroup
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates an empty group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use appends middleware run before every route of the group and its subgroups
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle adds a route
func (dg *DomainGroup) Handle(method, relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: relativePath, handlers: handlers})
	return dg
}

func (dg *DomainGroup) GET(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, relativePath, handlers...)
}

func (dg *DomainGroup) POST(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, relativePath, handlers...)
}

func (dg *DomainGroup) PUT(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, relativePath, handlers...)
}

func (dg *DomainGroup) PATCH(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, relativePath, handlers...)
}

func (dg *DomainGroup) DELETE(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, relativePath, handlers...)
}

// Group adds a nested group inheriting this group's prefix and middleware
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(group)
	}
}

func (dg *DomainGroup) collect(base string, routes []Route) []Route {
	prefix := joinPath(base, dg.prefix)
	for _, rt := range dg.routes {
		routes = append(routes, Route{Group: dg.name, Method: rt.method, Path: joinPath(prefix, rt.path)})
	}
	for _, sub := range dg.subgroups {
		routes = sub.collect(prefix, routes)
	}
	return routes
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// joinPath joins like gin does: a trailing slash on elem survives
func joinPath(base, elem string) string {
	if elem == "" {
		return base
	}
	joined := path.Join(base, elem)
	if elem[len(elem)-1] == '/' && joined[len(joined)-1] != '/' {
		return joined + "/"
	}
	return joined
}
