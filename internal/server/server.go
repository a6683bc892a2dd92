package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ryabkov82/iwato-orders/internal/orders"
)

//go:embed index.html
var indexHTML []byte

// Server HTTP-оболочка: загрузка журнала и выдача готовых файлов
type Server struct {
	router    *gin.Engine
	svc       *orders.Service
	log       logrus.FieldLogger
	maxUpload int64
}

func New(svc *orders.Service, log logrus.FieldLogger, maxUpload int64, devMode bool) *Server {
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		router:    gin.New(),
		svc:       svc,
		log:       log,
		maxUpload: maxUpload,
	}
	s.router.Use(gin.Recovery(), s.requestLog())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})

	api := s.router.Group("/api")
	{
		api.GET("/options", s.options)
		api.POST("/process", s.process)
		api.POST("/orders", s.buildOrders)
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Debug("request")
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
