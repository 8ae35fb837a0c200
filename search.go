package learnhub

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ArticleSearcher finds web articles for a query
type ArticleSearcher interface {
	SearchArticles(ctx context.Context, query string, limit int, lang string) ([]Article, error)
}

// VideoSearcher finds videos for a query
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, limit int, lang string) ([]Video, error)
}

// GoogleArticleSearch queries a Programmable Search Engine
type GoogleArticleSearch struct {
	svc      *customsearch.Service
	engineID string
}

// NewGoogleArticleSearch creates a custom search client. Extra options are
// appended after the API key, which lets tests point it at a local endpoint.
func NewGoogleArticleSearch(ctx context.Context, apiKey, engineID string, opts ...option.ClientOption) (*GoogleArticleSearch, error) {
	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}
	return &GoogleArticleSearch{svc: svc, engineID: engineID}, nil
}

// SearchArticles returns up to limit results restricted to lang
func (s *GoogleArticleSearch) SearchArticles(ctx context.Context, query string, limit int, lang string) ([]Article, error) {
	res, err := s.svc.Cse.List().
		Cx(s.engineID).
		Q(query).
		Num(int64(limit)).
		Lr("lang_" + lang).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}

	articles := make([]Article, 0, len(res.Items))
	for _, item := range res.Items {
		if item == nil {
			continue
		}
		articles = append(articles, Article{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return articles, nil
}

// YouTubeVideoSearch queries the YouTube Data API
type YouTubeVideoSearch struct {
	svc *youtube.Service
}

// NewYouTubeVideoSearch creates a YouTube search client
func NewYouTubeVideoSearch(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeVideoSearch, error) {
	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &YouTubeVideoSearch{svc: svc}, nil
}

// SearchVideos returns up to limit videos, ranked with lang as relevance hint
func (s *YouTubeVideoSearch) SearchVideos(ctx context.Context, query string, limit int, lang string) ([]Video, error) {
	res, err := s.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		RelevanceLanguage(lang).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	videos := make([]Video, 0, len(res.Items))
	for i, item := range res.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			return nil, fmt.Errorf("%w: video result %d has no id or snippet", ErrMalformedOutput, i)
		}
		videos = append(videos, Video{
			ID:        item.Id.VideoId,
			Title:     item.Snippet.Title,
			Thumbnail: highThumbnail(item.Snippet.Thumbnails),
		})
	}
	return videos, nil
}

func highThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
