package main

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type searchResponse struct {
	Message string `json:"message"`
	learnhub.AggregatedResult
}

type generateQuizRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

type gradeQuizRequest struct {
	Token   string            `json:"quiz_token"`
	Answers map[string]string `json:"answers"`
}

type profileResponse struct {
	SavedArticles []learnhub.Article `json:"saved_articles"`
	SavedVideos   []learnhub.Video   `json:"saved_videos"`
	SearchHistory []string           `json:"search_history"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// handleSearch serves GET ?q=&lang= and POST {"topic","language"}
func (s *Server) handleSearch(c *gin.Context) {
	var q learnhub.TopicQuery
	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBindJSON(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	} else {
		q.Topic = firstNonEmpty(c.Query("q"), c.Query("topic"))
		q.LanguageCode = firstNonEmpty(c.Query("lang"), c.Query("language"))
	}
	if q.LanguageCode == "" {
		q.LanguageCode = learnhub.DefaultLanguage.Code
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	result, err := s.aggregator.Aggregate(ctx, q)
	if err != nil {
		s.respondError(c, err, "Failed to fetch data from APIs")
		return
	}

	if s.history != nil {
		if err := s.history.Record(c.Writer, c.Request, q.Topic); err != nil {
			s.log.Warn("Failed to record search history", "error", err)
		}
	}

	c.JSON(http.StatusOK, searchResponse{Message: "Success", AggregatedResult: *result})
}

func (s *Server) handleSaveArticle(c *gin.Context) {
	var article learnhub.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	added, err := s.registry.SaveArticle(c.Request.Context(), article)
	if err != nil {
		s.respondError(c, err, "Failed to save article")
		return
	}

	message := "Article saved successfully"
	if !added {
		message = "Article already saved"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (s *Server) handleSaveVideo(c *gin.Context) {
	var video learnhub.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	added, err := s.registry.SaveVideo(c.Request.Context(), video)
	if err != nil {
		s.respondError(c, err, "Failed to save video")
		return
	}

	message := "Video saved successfully"
	if !added {
		message = "Video already saved"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (s *Server) handleListArticles(c *gin.Context) {
	articles, err := s.registry.Articles(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "Failed to get saved articles")
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (s *Server) handleListVideos(c *gin.Context) {
	videos, err := s.registry.Videos(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "Failed to get saved videos")
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (s *Server) handleProfile(c *gin.Context) {
	ctx := c.Request.Context()
	articles, err := s.registry.Articles(ctx)
	if err != nil {
		s.respondError(c, err, "Failed to load profile")
		return
	}
	videos, err := s.registry.Videos(ctx)
	if err != nil {
		s.respondError(c, err, "Failed to load profile")
		return
	}

	history := []string{}
	if s.history != nil {
		history = s.history.Topics(c.Request)
	}

	c.JSON(http.StatusOK, profileResponse{
		SavedArticles: articles,
		SavedVideos:   videos,
		SearchHistory: history,
	})
}

func (s *Server) handleGenerateQuiz(c *gin.Context) {
	var req generateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	quiz, err := s.quizzes.Generate(ctx, req.Topic, req.NumQuestions)
	if err != nil {
		s.respondError(c, err, "Failed to generate quiz")
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (s *Server) handleGradeQuiz(c *gin.Context) {
	var req gradeQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := s.quizzes.Grade(c.Request.Context(), req.Token, req.Answers)
	if err != nil {
		s.respondError(c, err, "Failed to grade quiz")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleVideo(c *gin.Context) {
	id := c.Param("id")
	if !videoIDPattern.MatchString(id) {
		c.String(http.StatusNotFound, "Video not found")
		return
	}

	title := "Video " + id
	video, ok, err := s.registry.FindVideo(c.Request.Context(), id)
	if err != nil {
		s.log.Warn("Failed to look up saved video", "id", id, "error", err)
	} else if ok {
		title = video.Title
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err = s.templates["video"].Execute(c.Writer, map[string]interface{}{
		"Title":    title,
		"EmbedURL": "https://www.youtube.com/embed/" + id,
	})
	if err != nil {
		s.log.Error("Template error in video", "error", err)
	}
}

// respondError maps domain errors to status codes. Upstream details are
// logged and replaced with fallback.
func (s *Server) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, learnhub.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired quiz token"})
	case errors.Is(err, learnhub.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("API route error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
