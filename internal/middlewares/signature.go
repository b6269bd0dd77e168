package middlewares

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/response"
)

const (
	SignatureHeader = "X-Twilio-Signature"
)

// ComputeSignature is the carrier's request signature: base64 HMAC-SHA1, keyed
// by the auth token, over the full URL followed by every POST body key and
// value in key order.
func ComputeSignature(authToken, fullURL string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fullURL)
	for _, k := range keys {
		for _, v := range params[k] {
			b.WriteString(k)
			b.WriteString(v)
		}
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// CarrierSignature rejects inbound webhook calls whose signature does not match.
// webhookURL is the public URL the carrier was configured with; when empty it
// is rebuilt from the request, which breaks behind rewriting proxies.
func CarrierSignature(authToken, webhookURL string) echo.MiddlewareFunc {
	if authToken == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return response.InternalServerError(
					c,
					fmt.Errorf("carrier auth token is not configured for signature validation"),
				)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			signature := c.Request().Header.Get(SignatureHeader)
			if signature == "" {
				return response.Forbidden(c, "missing carrier signature")
			}

			// The carrier signs the POST body only; query values are already in the URL.
			if err := c.Request().ParseForm(); err != nil {
				return response.Forbidden(c, "unreadable webhook body")
			}
			params := c.Request().PostForm

			fullURL := webhookURL
			if fullURL == "" {
				fullURL = c.Scheme() + "://" + c.Request().Host + c.Request().RequestURI
			}

			if !secureCompare(signature, ComputeSignature(authToken, fullURL, params)) {
				logger.Warnf("Rejected webhook call with invalid signature from %s", c.RealIP())
				return response.Forbidden(c, "invalid carrier signature")
			}

			return next(c)
		}
	}
}
