package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paperview/paperview/internal/i18n"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader is the HTTP header used to propagate the request ID.
	RequestIDHeader = "X-Request-ID"

	// LanguageKey is the gin context key for the resolved UI language.
	LanguageKey = "lang"
)

// requestID always generates a fresh server-side UUID for the canonical request ID.
// A client-provided X-Request-ID is logged as "client_request_id" only.
func requestID(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			log.WithFields(logrus.Fields{
				"request_id":        id,
				"client_request_id": clientID,
			}).Debug("client provided request ID mapped to server ID")
			c.Set("client_request_id", clientID)
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func ginLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(RequestIDKey); exists {
			fields["request_id"] = rid
		}
		if lang := c.GetString(LanguageKey); lang != "" {
			fields["lang"] = lang
		}
		log.WithFields(fields).Info("request")
	}
}

// prometheusMiddleware records HTTP request duration and count.
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath() // route pattern, not actual path
		if path == "" {
			path = "unknown"
		}
		RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// language resolves the UI language from ?lang=, then Accept-Language, then
// the configured default.
func language(def string) gin.HandlerFunc {
	if !i18n.IsSupported(def) {
		def = i18n.FallbackLanguage
	}
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if !i18n.IsSupported(lang) {
			lang = i18n.FromAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = def
		}

		c.Set(LanguageKey, lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}

// requestLogger returns log scoped to the current request ID.
func requestLogger(c *gin.Context, log logrus.FieldLogger) logrus.FieldLogger {
	if rid, ok := c.Get(RequestIDKey); ok {
		return log.WithField("request_id", rid)
	}
	return log
}
