package memory

import (
	"time"

	"ai-chat-be/pkg/speech"

	"github.com/patrickmn/go-cache"
)

const (
	voicesKey    = "voices"
	languagesKey = "languages"
)

// VoiceCache holds the speech provider's voice and language catalogs. The
// catalogs change rarely, so a short in-process TTL avoids hitting the
// provider on every listing request.
type VoiceCache struct {
	cache *cache.Cache
}

func NewVoiceCache() *VoiceCache {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &VoiceCache{
		cache: c,
	}
}

func (r *VoiceCache) GetVoices() ([]speech.Voice, bool) {
	if x, found := r.cache.Get(voicesKey); found {
		return x.([]speech.Voice), true
	}
	return nil, false
}

func (r *VoiceCache) SaveVoices(voices []speech.Voice) {
	r.cache.Set(voicesKey, voices, cache.DefaultExpiration)
}

func (r *VoiceCache) GetLanguages() ([]string, bool) {
	if x, found := r.cache.Get(languagesKey); found {
		return x.([]string), true
	}
	return nil, false
}

func (r *VoiceCache) SaveLanguages(languages []string) {
	r.cache.Set(languagesKey, languages, cache.DefaultExpiration)
}
