// Package server exposes the vendor review over a JSON API for the web
// dashboard frontend.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/steinunnb/vendorwatch/internal/batch"
	"github.com/steinunnb/vendorwatch/internal/common"
	"github.com/steinunnb/vendorwatch/internal/payday"
	"github.com/steinunnb/vendorwatch/internal/review"
)

// Server serves the review API.
type Server struct {
	fetcher payday.StatementFetcher
	runner  *batch.Runner
}

// New creates a Server on top of the given statement fetcher. Batch runs
// reuse the same fetcher and, when provided, the statement cache.
func New(fetcher payday.StatementFetcher, runnerOpts ...batch.Option) *Server {
	return &Server{
		fetcher: fetcher,
		runner:  batch.NewRunner(fetcher, runnerOpts...),
	}
}

// Router builds the gin router with all API routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/vendors", s.listVendors)
		api.GET("/vendors/:id/review", s.reviewVendor)
		api.POST("/review", s.reviewAll)
	}

	return router
}

// Run starts the HTTP server on addr and blocks.
func (s *Server) Run(addr string) error {
	slog.Info("Starting review API", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) listVendors(c *gin.Context) {
	vendors, err := s.fetcher.ListVendors(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list vendors", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to list vendors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

func (s *Server) reviewVendor(c *gin.Context) {
	vendorID := c.Param("id")
	date := c.Query("date")
	if _, err := review.ParseReportDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	lines, err := s.fetcher.FetchStatement(c.Request.Context(), vendorID, "2020-01-01", date)
	if err != nil {
		if errors.Is(err, common.ErrVendorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}
		slog.Error("Failed to fetch statement", "vendor_id", vendorID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch statement"})
		return
	}

	result, err := review.ReviewVendor(lines, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type reviewAllRequest struct {
	Date string `json:"date" binding:"required"`
}

func (s *Server) reviewAll(c *gin.Context) {
	var req reviewAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"date\": \"YYYY-MM-DD\"}"})
		return
	}
	if _, err := review.ParseReportDate(req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	result, err := s.runner.Run(c.Request.Context(), req.Date)
	if err != nil {
		slog.Error("Batch review failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "batch review failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
