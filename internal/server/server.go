// Package server exposes invoice generation over HTTP. It serves all
// buyers of one billing configuration; each request selects a buyer and
// supplies the invoice metadata and line items.
package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awinterstein/xrechnung/internal/config"
	"github.com/awinterstein/xrechnung/internal/model"
	"github.com/awinterstein/xrechnung/internal/ubl"
	"github.com/awinterstein/xrechnung/internal/xmldoc"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config  *Config
	router  *gin.Engine
	billing *config.File
}

// NewServer creates a new API server on top of the given billing
// configuration.
func NewServer(cfg *Config, billing *config.File) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:  cfg,
		router:  router,
		billing: billing,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices", s.handleGenerate)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	cfg, err := s.billing.ForBuyer(req.Buyer)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	issueDate, err := time.Parse(model.DateLayout, req.IssueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid issue_date", Details: err.Error()})
		return
	}

	var period *model.Period
	if req.Period != nil {
		start, err := time.Parse(model.DateLayout, req.Period.Start)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid period start", Details: err.Error()})
			return
		}
		end, err := time.Parse(model.DateLayout, req.Period.End)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid period end", Details: err.Error()})
			return
		}
		period = &model.Period{Start: start, End: end}
	}

	bill := model.NewBill(req.Number, issueDate, period, cfg)

	root, err := ubl.BuildInvoice(&cfg.Supplier, &cfg.Buyer, &bill, req.LineItems)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invoice assembly failed", Details: err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := xmldoc.Serialize(&buf, root); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "serialization failed", Details: err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}
