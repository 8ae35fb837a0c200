package learnhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SearchResultLimit caps both the article and the video search
const SearchResultLimit = 10

// Aggregator assembles explanations, key concepts, articles and videos for a topic
type Aggregator struct {
	gen        TextGenerator
	articles   ArticleSearcher
	videos     VideoSearcher
	concepts   *ConceptExtractor
	metrics    *Metrics
	transcript *LLMLogger
	log        *Logger
}

// NewAggregator wires the three collaborators together. metrics, transcript
// and log may be nil.
func NewAggregator(gen TextGenerator, articles ArticleSearcher, videos VideoSearcher, metrics *Metrics, transcript *LLMLogger, log *Logger) *Aggregator {
	log = orNop(log)
	return &Aggregator{
		gen:        gen,
		articles:   articles,
		videos:     videos,
		concepts:   NewConceptExtractor(gen, transcript, log),
		metrics:    metrics,
		transcript: transcript,
		log:        log,
	}
}

// Aggregate gathers everything for q. Either every collaborator call succeeds
// or the whole request fails with ErrUpstream.
func (a *Aggregator) Aggregate(ctx context.Context, q TopicQuery) (*AggregatedResult, error) {
	topic := strings.TrimSpace(q.Topic)
	if topic == "" {
		return nil, missingField("topic")
	}

	lang, known := ResolveLanguage(q.LanguageCode)
	if !known {
		a.log.Debug("Unsupported language, using default", "language", q.LanguageCode, "default", lang.Code)
	}

	result := &AggregatedResult{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		text, err := a.generate(gctx, "ShortSummary", buildShortPrompt(topic, lang))
		result.ShortExplanation = text
		return err
	})

	g.Go(func() error {
		text, err := a.generate(gctx, "LongExplanation", buildLongPrompt(topic, lang))
		if err != nil {
			return err
		}
		result.LongExplanation = text
		result.KeyConcepts = a.concepts.Extract(gctx, text)
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		articles, err := a.articles.SearchArticles(gctx, topic, SearchResultLimit, lang.Code)
		a.metrics.observeUpstream("web_search", start, err)
		result.Articles = articles
		return err
	})

	g.Go(func() error {
		start := time.Now()
		videos, err := a.videos.SearchVideos(gctx, topic, SearchResultLimit, lang.Code)
		a.metrics.observeUpstream("video_search", start, err)
		result.Videos = videos
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if result.KeyConcepts == nil {
		result.KeyConcepts = []Concept{}
	}
	if result.Articles == nil {
		result.Articles = []Article{}
	}
	if result.Videos == nil {
		result.Videos = []Video{}
	}

	a.log.Debug("Aggregated topic",
		"topic", topic,
		"language", lang.Code,
		"concepts", len(result.KeyConcepts),
		"articles", len(result.Articles),
		"videos", len(result.Videos),
	)
	return result, nil
}

func (a *Aggregator) generate(ctx context.Context, module, prompt string) (string, error) {
	start := time.Now()
	text, err := generate(ctx, a.gen, a.transcript, module, prompt)
	a.metrics.observeUpstream("text_generator", start, err)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", module, err)
	}
	return text, nil
}

func buildShortPrompt(topic string, lang Language) string {
	return fmt.Sprintf("Provide a concise, 2-3 sentence summary for the topic: %q. The explanation MUST be in %s.", topic, lang.Name)
}

func buildLongPrompt(topic string, lang Language) string {
	return fmt.Sprintf("Provide a long, polished explanation for the topic: %q. Act as a professional. "+
		"The explanation MUST be in %s. Format it into multiple paragraphs separated by a blank line.", topic, lang.Name)
}
