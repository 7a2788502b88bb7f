package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func docsRouter(cfg SwaggerConfig, auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return r
}

func docsRequest(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	allow := func(c *gin.Context) {}

	tests := []struct {
		name   string
		cfg    SwaggerConfig
		auth   gin.HandlerFunc
		remote string
		want   int
	}{
		{"disabled", SwaggerConfig{}, nil, "127.0.0.1:1", http.StatusNotFound},
		{"open", SwaggerConfig{Enabled: true}, nil, "127.0.0.1:1", http.StatusOK},
		{"ip allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, nil, "127.0.0.1:1", http.StatusOK},
		{"ip denied", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, nil, "192.168.1.1:1", http.StatusForbidden},
		{"cidr allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, nil, "10.1.2.3:1", http.StatusOK},
		{"auth denied", SwaggerConfig{Enabled: true, RequireAuth: true}, deny, "127.0.0.1:1", http.StatusUnauthorized},
		{"auth allowed", SwaggerConfig{Enabled: true, RequireAuth: true}, allow, "127.0.0.1:1", http.StatusOK},
		{"ip checked before auth", SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"127.0.0.1"}}, deny, "192.168.1.1:1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docsRequest(docsRouter(tt.cfg, tt.auth), tt.remote))
		})
	}
}

func TestIsIPAllowed(t *testing.T) {
	ips, nets := parseAllowList([]string{"::1", "192.168.1.1", "10.0.0.0/8", "not-an-ip", "300.0.0.0/8"})

	assert.Len(t, ips, 2)
	assert.Len(t, nets, 1)
	assert.True(t, isIPAllowed(net.ParseIP("::1"), ips, nets))
	assert.True(t, isIPAllowed(net.ParseIP("10.9.9.9"), ips, nets))
	assert.False(t, isIPAllowed(net.ParseIP("11.0.0.1"), ips, nets))
	assert.False(t, isIPAllowed(nil, ips, nets))
}
