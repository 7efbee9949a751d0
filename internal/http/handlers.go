package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
	"github.com/Om-Mishra7/URL-Shortner/internal/http/middleware"
)

type Handlers struct {
	svc     *core.Service
	baseURL string
}

func NewHandlers(svc *core.Service, baseURL string) *Handlers {
	return &Handlers{svc: svc, baseURL: baseURL}
}

type tokenQuery struct {
	AuthorizationToken string `form:"authorization_token"`
}

type shortenQuery struct {
	tokenQuery
	URL             string `form:"url"`
	SecondsToExpire string `form:"seconds_to_expire"`
}

// ---- endpoints ----

func (h *Handlers) Root(c *gin.Context) {
	success(c, http.StatusOK, "URL Shortener API", nil)
}

func (h *Handlers) Health(c *gin.Context) {
	if err := h.svc.Health(c.Request.Context()); err != nil {
		_ = c.Error(middleware.WithDetail(err))
		return
	}
	success(c, http.StatusOK, "Store connection OK | Server OK | URL Shortener API", nil)
}

func (h *Handlers) Redirect(c *gin.Context) {
	rec, err := h.svc.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("X-Original-URL", rec.TargetURL)
	c.Header("X-Redirect-URL", h.shortURL(rec.ID))
	c.Header("Cache-Control", fmt.Sprintf("max-age=%d, public", core.CacheMaxAge(rec)))
	// Location is the stored target verbatim; http.Redirect would rewrite
	// scheme-less targets relative to this path.
	c.Header("Location", rec.TargetURL)
	c.Status(http.StatusTemporaryRedirect)
}

func (h *Handlers) Shorten(c *gin.Context) {
	var q shortenQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(err)
		return
	}
	rec, err := h.svc.Shorten(c.Request.Context(), core.ShortenRequest{
		URL:             q.URL,
		SecondsToExpire: q.SecondsToExpire,
		Token:           credential(c, q.AuthorizationToken),
		IP:              c.ClientIP(),
		UserAgent:       c.Request.UserAgent(),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	success(c, http.StatusCreated, "URL shortened", gin.H{
		"shortened_url": h.shortURL(rec.ID),
		"original_url":  q.URL,
		"expires_at":    rec.ExpiresAfter,
	})
}

func (h *Handlers) Stats(c *gin.Context) {
	var q tokenQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(err)
		return
	}
	rec, err := h.svc.Stats(c.Request.Context(), credential(c, q.AuthorizationToken), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	st := rec.Stats()
	success(c, http.StatusOK, "URL stats", gin.H{
		"url_id":              st.ID,
		"number_of_redirects": st.Redirects,
		"created_at":          st.CreatedAt,
		"expires_at":          st.ExpiresAfter,
	})
}

func (h *Handlers) AllStats(c *gin.Context) {
	var q tokenQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(err)
		return
	}
	urls, err := h.svc.AllStats(c.Request.Context(), credential(c, q.AuthorizationToken))
	if err != nil {
		_ = c.Error(err)
		return
	}
	success(c, http.StatusOK, "URL stats", gin.H{"urls": urls})
}

func (h *Handlers) NoRoute(c *gin.Context) {
	_ = c.Error(middleware.ErrNoRoute)
}

// ---- helpers ----

func (h *Handlers) shortURL(id string) string {
	return h.baseURL + "/" + id
}

// credential prefers the authorization_token query parameter and falls back
// to an "Authorization: Bearer" header.
func credential(c *gin.Context, fromQuery string) string {
	if fromQuery != "" {
		return fromQuery
	}
	const prefix = "bearer "
	hdr := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(hdr) > len(prefix) && strings.EqualFold(hdr[:len(prefix)], prefix) {
		return strings.TrimSpace(hdr[len(prefix):])
	}
	return ""
}

func success(c *gin.Context, status int, msg string, fields gin.H) {
	body := gin.H{
		"status":     "success",
		"message":    msg,
		"request_id": middleware.GetRequestID(c),
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}
