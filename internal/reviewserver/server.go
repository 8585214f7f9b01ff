// Package reviewserver is a local, in-memory review endpoint speaking the
// same contract as the production one. It exists for development and tests.
package reviewserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"go.uber.org/zap"
)

type Server struct {
	log *zap.Logger

	mu      sync.RWMutex
	reviews []storedReview
}

type storedReview struct {
	domain.Review
	CreatedAt time.Time
}

type submitRequest struct {
	Name   string `form:"name" binding:"required"`
	Rating int    `form:"rating" binding:"required,min=1,max=5"`
	Text   string `form:"text" binding:"required"`
}

func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{log: log}
}

// Handler mounts the endpoint at path, e.g. "/reviews".
func (s *Server) Handler(path string) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(path, s.list)
	router.POST(path, s.submit)

	return router
}

func (s *Server) list(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]domain.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		reviews = append(reviews, r.Review)
	}

	c.JSON(http.StatusOK, reviews)
}

func (s *Server) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid review",
			"error":   err.Error(),
		})
		return
	}

	r := domain.Review{
		Name:   strings.TrimSpace(req.Name),
		Rating: req.Rating,
		Text:   strings.TrimSpace(req.Text),
	}
	if r.Name == "" || r.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid review",
			"error":   "name and text must not be blank",
		})
		return
	}

	s.mu.Lock()
	s.reviews = append(s.reviews, storedReview{Review: r, CreatedAt: time.Now().UTC()})
	s.mu.Unlock()

	s.log.Info("review stored", zap.String("name", r.Name), zap.Int("rating", r.Rating))

	c.JSON(http.StatusCreated, r)
}
