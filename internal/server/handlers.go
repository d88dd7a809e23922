package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/internal/export"
	"github.com/naka-gawa/github-wrapped/internal/render"
	"github.com/naka-gawa/github-wrapped/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type submitRequest struct {
	Username string `json:"username"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// themeFor picks the ?theme= query parameter over the configured theme.
func (s *Server) themeFor(c *gin.Context) (render.Theme, string) {
	if q := c.Query("theme"); q != "" {
		theme := render.ThemeByName(q)
		return theme, theme.Name
	}
	return render.ThemeByName(s.theme), ""
}

// Index renders the page for the current slot.
func (s *Server) Index(c *gin.Context) {
	theme, query := s.themeFor(c)
	c.HTML(http.StatusOK, render.PageTemplateName, render.NewPageView(s.tracker.Current(), theme, query))
}

// SubmitForm handles the username form. The outcome lands in the slot, so it always redirects back.
func (s *Server) SubmitForm(c *gin.Context) {
	if _, err := s.tracker.Submit(c.Request.Context(), c.PostForm("username")); err != nil {
		_ = c.Error(err)
	}
	target := "/"
	if _, query := s.themeFor(c); query != "" {
		target += "?theme=" + url.QueryEscape(query)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// SubmitJSON runs a report and returns it directly.
func (s *Server) SubmitJSON(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be a JSON object with a username")
		return
	}

	report, err := s.tracker.Submit(c.Request.Context(), req.Username)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, report)
	case errors.Is(err, domain.ErrInput):
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, usecase.ErrSuperseded):
		writeError(c, http.StatusConflict, "SUPERSEDED", err.Error())
	case errors.Is(err, domain.ErrUpstream):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// CurrentStats returns the slot as JSON.
func (s *Server) CurrentStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Current())
}

func (s *Server) Card(c *gin.Context) {
	report := s.tracker.Current().Report
	if report == nil {
		writeError(c, http.StatusNotFound, "NO_REPORT", "no stats have been fetched yet")
		return
	}
	theme, _ := s.themeFor(c)
	out, err := render.RenderSVG(report, theme)
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to render card")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", out)
}

func (s *Server) Export(c *gin.Context) {
	report := s.tracker.Current().Report
	if report == nil {
		writeError(c, http.StatusNotFound, "NO_REPORT", "no stats have been fetched yet")
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, report); err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to build workbook")
		return
	}
	filename := fmt.Sprintf("%s-%d.xlsx", report.Username, report.From.Year())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
