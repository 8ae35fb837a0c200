package learnhub

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// Registry is the bookmark list for articles and videos. Saving an item whose
// natural key (link or id) is already present is a no-op.
type Registry struct {
	store   ItemStore
	metrics *Metrics
	log     *Logger
}

// NewRegistry creates a registry on top of store
func NewRegistry(store ItemStore, metrics *Metrics, log *Logger) *Registry {
	return &Registry{store: store, metrics: metrics, log: orNop(log)}
}

// SaveArticle validates and stores article. It reports whether it was new.
func (r *Registry) SaveArticle(ctx context.Context, article Article) (bool, error) {
	if err := requireFields("title", article.Title, "link", article.Link, "snippet", article.Snippet); err != nil {
		return false, err
	}
	added, err := r.store.AddArticle(ctx, article)
	if err != nil {
		return false, err
	}
	r.metrics.itemSaved("article", added)
	r.log.Debug("Article saved", "link", article.Link, "added", added)
	return added, nil
}

// SaveVideo validates and stores video. It reports whether it was new.
func (r *Registry) SaveVideo(ctx context.Context, video Video) (bool, error) {
	if err := requireFields("id", video.ID, "title", video.Title, "thumbnail", video.Thumbnail); err != nil {
		return false, err
	}
	added, err := r.store.AddVideo(ctx, video)
	if err != nil {
		return false, err
	}
	r.metrics.itemSaved("video", added)
	r.log.Debug("Video saved", "id", video.ID, "added", added)
	return added, nil
}

func (r *Registry) Articles(ctx context.Context) ([]Article, error) {
	return r.store.Articles(ctx)
}

func (r *Registry) Videos(ctx context.Context) ([]Video, error) {
	return r.store.Videos(ctx)
}

// FindVideo looks up a saved video by id
func (r *Registry) FindVideo(ctx context.Context, id string) (Video, bool, error) {
	videos, err := r.store.Videos(ctx)
	if err != nil {
		return Video{}, false, err
	}
	video, ok := lo.Find(videos, func(v Video) bool { return v.ID == id })
	return video, ok, nil
}

// requireFields takes name/value pairs and fails on the first blank value
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return missingField(pairs[i])
		}
	}
	return nil
}
