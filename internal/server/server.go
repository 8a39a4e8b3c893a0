package server

import (
	"context"
	goerrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobpulse/internal/cache"
	"jobpulse/internal/config"
	"jobpulse/internal/dataset"
	"jobpulse/internal/model"
	"jobpulse/pkg/log"
)

const httpXRequestId = "X-Request-Id"

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	cache      *cache.Cache
	logger     *logrus.Entry
}

func NewServer(ctx context.Context, conf *config.Config) (*Server, error) {
	logger := log.GetLogger(ctx)

	ttl := time.Duration(conf.Cache.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	c, err := cache.Open(conf.Cache.Dir, ttl, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		conf:   conf,
		cache:  c,
		logger: logger,
	}

	return s, nil
}

func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(httpXRequestId)
		if requestId == "" {
			requestId = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
		c.Header(httpXRequestId, requestId)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		c.Next()
		latency := time.Since(t)
		status := c.Writer.Status()

		logrus.Info("ip: ", c.ClientIP(), " method: ", c.Request.Method, " path: ",
			c.Request.URL.Path, " status: ", status, " latency: ", latency)
	}
}

func (s *Server) Start() {
	gin.SetMode(gin.ReleaseMode)
	router := s.SetUpRouter()
	s.httpServer = &http.Server{
		Addr:    s.conf.Addr,
		Handler: router,
	}

	var err error
	if s.conf.SSLCert != "" && s.conf.SSLKey != "" {
		logrus.Infof("start https server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServeTLS(s.conf.SSLCert, s.conf.SSLKey)
	} else {
		logrus.Infof("start http server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		logrus.Fatal(err)
	}
}

func (s *Server) Shutdown() {
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}
	if err := s.cache.Close(); err != nil {
		logrus.Errorf("closing cache: %v", err)
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{
		Error: err.Error(),
	})
}

// writeDomainError maps the error taxonomy onto HTTP: an unreadable source
// is the caller's path problem, a missing store means the build job has not
// run yet.
func (s *Server) writeDomainError(c *gin.Context, err error) {
	switch {
	case goerrors.Is(err, dataset.ErrSourceUnreadable):
		s.writeError(c, http.StatusNotFound, err)
	case goerrors.Is(err, model.ErrStoreUnavailable):
		s.writeError(c, http.StatusServiceUnavailable, err)
	default:
		s.writeError(c, http.StatusInternalServerError, err)
	}
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("periodfreq", func(fl validator.FieldLevel) bool {
			_, err := dataset.ParseFreq(fl.Field().String())
			return err == nil
		})
	}
}
