// This file implements RedactingLogger, the access logger of the service.
// It scrubs personal data and secrets from request metadata before anything
// is written and attaches a request-scoped logger for handlers.
//
// Never logged verbatim:
//   - request and response bodies (not logged at all)
//   - Telegram bot tokens, e-mail addresses, phone numbers and UUIDs in
//     query strings and header values
//   - Authorization, Cookie, Set-Cookie and any header in MaskHeaders
//   - routes listed in SecretPaths, such as the webhook path that embeds
//     part of the bot token
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures RedactingLogger.
type RedactOptions struct {
	// MaskHeaders are extra header names (case-insensitive) whose values are
	// replaced with "[REDACTED]".
	MaskHeaders []string
	// SecretPaths are registered routes logged as "[REDACTED:path]".
	SecretPaths []string
}

var (
	botTokenRE = regexp.MustCompile(`\b\d{6,12}:[A-Za-z0-9_-]{30,}\b`)
	uuidRE     = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE    = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits-only phone pattern, e.g. "+998 90 123 45 67", "(212) 555-1212".
	phoneRE = regexp.MustCompile(`\+?\d{1,3}[ .-]?(?:\(?\d{2,4}\)?[ .-]?)?\d{2,4}[ .-]?\d{2}[ .-]?\d{2}\b`)
)

// redact scrubs s. Order matters: tokens and UUIDs go before the phone
// pattern, which would otherwise match their digit runs.
func redact(s string) string {
	if s == "" {
		return s
	}
	s = botTokenRE.ReplaceAllString(s, "[REDACTED:token]")
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactingLogger returns a Gin middleware that writes one structured access
// log line per request with sensitive values scrubbed. The level is info,
// warn for 4xx and error for 5xx or when handlers recorded gin errors.
//
// It also stores a request-scoped logger (request_id, method, path) under
// the "logger" key; see LoggerFrom.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}
	secret := pathSet(opts.SecretPaths)

	return func(c *gin.Context) {
		start := time.Now()

		path := routePath(c, secret)
		rid, _ := c.Get(requestIDKey)
		reqID := asString(rid)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}

		scoped := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		c.Set(loggerKey, &scoped)

		safeQuery := ""
		if path != maskedPath {
			safeQuery = redact(truncate(c.Request.URL.RawQuery, maxQueryLogLength))
		}

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redact(strings.Join(vv, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		ev := scoped.Info()
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = scoped.Error()
		case status >= 400:
			ev = scoped.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", redact(c.Errors.String()))
		}

		ev.
			Str("query", safeQuery).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
