package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func mountTestController(rs *RouterService, echoLimiter ratelimit.RateLimiter) {
	ctrl := NewRESTController("TestController", "/", func(rs *RouterService, c *RESTController) {
		rs.AddGetHandler(c, nil, "ip", func(ctx *RequestContext) *ServiceResult {
			return OKResult(ctx.ClientIP(), "ok")
		})

		rs.AddPostHandler(c, echoLimiter, "echo", func(ctx *RequestContext) *ServiceResult {
			var payload map[string]any
			if err := ctx.ShouldBindJSON(&payload); err != nil {
				return BadRequestResult("bad", nil)
			}
			return OKResult(payload, "ok")
		})
	})

	rs.MountController(ctrl)
}

func newTestRouterService(t *testing.T) *RouterService {
	t.Helper()

	return CreateRouterService(log.NewLoggerWithJSONOutput(), nil, &RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
}

func serve(rs *RouterService, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ServiceResult {
	t.Helper()
	var resp ServiceResult
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp))
	return resp
}

func TestTrustedProxies(t *testing.T) {
	tests := []struct {
		name    string
		proxies string
		wantIP  string
	}{
		{"disabled by default", "", "10.0.0.2"},
		{"star trusts forwarded for", "*", "1.1.1.1"},
		{"listed proxy trusted", "10.0.0.0/8", "1.1.1.1"},
		{"unlisted proxy ignored", "192.168.0.0/16", "10.0.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRUSTED_PROXIES", tt.proxies)

			rs := newTestRouterService(t)
			mountTestController(rs, nil)

			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			req.Header.Set("X-Forwarded-For", "1.1.1.1")

			w := serve(rs, req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.wantIP, decodeEnvelope(t, w).Data)
		})
	}
}

func TestParseTrustedProxiesEnv(t *testing.T) {
	assert.Nil(t, parseTrustedProxiesEnv("  "))
	assert.Nil(t, parseTrustedProxiesEnv(" , "))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, parseTrustedProxiesEnv("10.0.0.1, ,10.0.0.2"))
}

func TestMaxBodySize_Returns413(t *testing.T) {
	t.Setenv("MAX_REQUEST_BODY_BYTES", "10")

	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(bytes.Repeat([]byte{'a'}, 50)))
	req.Header.Set("Content-Type", "application/json")

	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(rs, req).Code)
}

func TestCorrelationID_EchoedOrGenerated(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	assert.Equal(t, "abc-123", serve(rs, req).Header().Get("X-Correlation-ID"))

	w := serve(rs, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestRateLimit_HandlerOverrideTakesPrecedence(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs, ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: 1,
		Window:   time.Minute,
	}))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		return serve(rs, req)
	}

	first := post()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := post()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusTooManyRequests, decodeEnvelope(t, second).StatusCode)

	// The global limiter still governs other routes.
	assert.Equal(t, http.StatusOK, serve(rs, httptest.NewRequest(http.MethodGet, "/ip", nil)).Code)
}

func TestNoRoute_JSONByDefaultAndHTMLForBrowsers(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	w := serve(rs, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decodeEnvelope(t, w).Message)

	rs.SetNotFoundPage(h.P(g.Text("nothing here")))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "text/html")
	w = serve(rs, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "<p>nothing here</p>", w.Body.String())

	apiReq := httptest.NewRequest(http.MethodGet, "/missing", nil)
	apiReq.Header.Set("Accept", "application/json")
	assert.Contains(t, serve(rs, apiReq).Header().Get("Content-Type"), "application/json")
}

func TestNoMethod_Returns405(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	w := serve(rs, httptest.NewRequest(http.MethodDelete, "/ip", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORS(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://hebed.ai, https://www.hebed.ai")

	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	allowed := httptest.NewRequest(http.MethodGet, "/ip", nil)
	allowed.Header.Set("Origin", "https://www.hebed.ai")
	assert.Equal(t, "https://www.hebed.ai", serve(rs, allowed).Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/ip", nil)
	denied.Header.Set("Origin", "https://evil.example")
	assert.Empty(t, serve(rs, denied).Header().Get("Access-Control-Allow-Origin"))
}

func TestHSTS_OnlyOverHTTPSWhenEnabled(t *testing.T) {
	t.Setenv("HSTS_ENABLED", "true")
	t.Setenv("HSTS_MAX_AGE", "600")
	t.Setenv("HSTS_INCLUDE_SUBDOMAINS", "false")

	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	plain := serve(rs, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.Empty(t, plain.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "max-age=600", serve(rs, req).Header().Get("Strict-Transport-Security"))
}

func TestRateLimit_ControllerOverrideAppliesToEveryRoute(t *testing.T) {
	rs := newTestRouterService(t)
	rs.MountController(NewVersionedRESTController("Limited", "v1", "limited", func(rs *RouterService, c *RESTController) {
		c.RateLimitWith(rs, ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{Requests: 1, Window: time.Minute}))
		rs.AddGetHandler(c, nil, "", func(*RequestContext) *ServiceResult { return OKResult(nil, "ok") })
	}))

	require.Equal(t, http.StatusOK, serve(rs, httptest.NewRequest(http.MethodGet, "/v1/limited", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(rs, httptest.NewRequest(http.MethodGet, "/v1/limited", nil)).Code)
}

func TestRateLimit_HTMLClientsGetPlainMessage(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs, ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{Requests: 1, Window: time.Minute}))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("HX-Request", "true")
		return serve(rs, req)
	}

	post()
	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, tooManySubmissionsText, w.Body.String())
}

func TestAddHandler_DuplicateRoutePanics(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs, nil)

	assert.Panics(t, func() { mountTestController(rs, nil) })
}

func TestCleanRoute(t *testing.T) {
	assert.Equal(t, "/", cleanRoute("/", ""))
	assert.Equal(t, "/v1/waitlist", cleanRoute("v1", "/waitlist/"))
	assert.Equal(t, "/forms/:placement", cleanRoute("/", "forms/:placement"))
}
