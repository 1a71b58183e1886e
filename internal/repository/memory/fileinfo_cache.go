package memory

import (
	"time"

	"ai-docauthor-be/pkg/openai"

	"github.com/patrickmn/go-cache"
)

// FileInfoCache memoizes uploaded-file metadata so listing the files of a
// vector store does not re-fetch info for files that cannot change.
type FileInfoCache struct {
	cache *cache.Cache
}

func NewFileInfoCache() *FileInfoCache {
	// Default expiration of 1 hour, purge of expired items every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &FileInfoCache{
		cache: c,
	}
}

func (r *FileInfoCache) Save(info *openai.File) {
	r.cache.Set(info.ID, info, cache.DefaultExpiration)
}

func (r *FileInfoCache) Get(fileID string) (*openai.File, bool) {
	if x, found := r.cache.Get(fileID); found {
		return x.(*openai.File), true
	}
	return nil, false
}

func (r *FileInfoCache) Delete(fileID string) {
	r.cache.Delete(fileID)
}
