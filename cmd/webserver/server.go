package main

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"learnhub"
)

//go:embed templates/*.html
var templateFS embed.FS

// ServerConfig carries the server's dependencies
type ServerConfig struct {
	Aggregator *learnhub.Aggregator
	Quizzes    *learnhub.QuizManager
	Registry   *learnhub.Registry
	History    *SearchHistory
	Metrics    http.Handler
	Logger     *learnhub.Logger

	RequestTimeout time.Duration
	CORSOrigins    []string
}

type Server struct {
	aggregator *learnhub.Aggregator
	quizzes    *learnhub.QuizManager
	registry   *learnhub.Registry
	history    *SearchHistory
	metrics    http.Handler
	log        *learnhub.Logger
	timeout    time.Duration
	origins    []string
	templates  map[string]*template.Template
}

// NewServer parses the page templates and builds a server
func NewServer(cfg ServerConfig) (*Server, error) {
	videoTmpl, err := template.ParseFS(templateFS, "templates/video.html")
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = learnhub.NopLogger()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Server{
		aggregator: cfg.Aggregator,
		quizzes:    cfg.Quizzes,
		registry:   cfg.Registry,
		history:    cfg.History,
		metrics:    cfg.Metrics,
		log:        log,
		timeout:    timeout,
		origins:    cfg.CORSOrigins,
		templates: map[string]*template.Template{
			"video": videoTmpl,
		},
	}, nil
}

// Router builds the gin engine with every route
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	if len(s.origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthcheck", s.handleHealth)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}

	api := r.Group("/api")
	{
		api.GET("/search", s.handleSearch)
		api.POST("/search", s.handleSearch)

		api.POST("/save/article", s.handleSaveArticle)
		api.POST("/save/video", s.handleSaveVideo)
		api.GET("/saved/articles", s.handleListArticles)
		api.GET("/saved/videos", s.handleListVideos)

		api.GET("/profile", s.handleProfile)
	}

	r.POST("/generate_quiz", s.handleGenerateQuiz)
	r.POST("/grade_quiz", s.handleGradeQuiz)

	r.GET("/videos/:id", s.handleVideo)

	return r
}
