package middleware

import "github.com/gin-gonic/gin"

// apiHeaders apply to every response. The API only serves JSON and file
// downloads, so nothing it returns may be framed, sniffed or executed.
var apiHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Referrer-Policy", "no-referrer"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()"},
	{"Cache-Control", "no-store"},
	{"Cross-Origin-Resource-Policy", "same-site"},
}

const hstsValue = "max-age=31536000; includeSubDomains"

// SecurityHeaders sets the hardening headers. HSTS is only sent in
// production, where TLS terminates in front of the server.
func SecurityHeaders(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range apiHeaders {
			h.Set(kv[0], kv[1])
		}
		if production {
			h.Set("Strict-Transport-Security", hstsValue)
		}
		c.Next()
	}
}
