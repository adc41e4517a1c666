package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"content-review-tutor/internal/model"
)

// table is the keyed storage behind implRepository. Callers hold the
// repository lock.
type table interface {
	get(key string) (*model.Session, bool)
	put(key string, s *model.Session)
	len() int
}

type implRepository struct {
	mu           sync.RWMutex
	tbl          table
	maxMessages  int
	maxDocuments int
	newKey       func() string
	now          func() time.Time
}

func newRepository(tbl table, opt Options) *implRepository {
	return &implRepository{
		tbl:          tbl,
		maxMessages:  opt.MaxMessages,
		maxDocuments: opt.MaxDocuments,
		newKey:       uuid.NewString,
		now:          time.Now,
	}
}

// NewMemory creates a map-backed repository. Sessions live until the
// process exits.
func NewMemory(opt Options) Repository {
	return newRepository(mapTable{}, opt)
}

// NewLRU creates a repository that evicts the least recently written session
// beyond lru.Size and expires sessions not written for lru.TTL.
func NewLRU(opt Options, lru LRUOptions) Repository {
	if lru.Size <= 0 {
		lru.Size = DefaultLRUSize
	}
	if lru.TTL <= 0 {
		lru.TTL = DefaultLRUTTL
	}
	return newRepository(&lruTable{
		cache: expirable.NewLRU[string, *model.Session](lru.Size, nil, lru.TTL),
	}, opt)
}

type mapTable map[string]*model.Session

func (t mapTable) get(key string) (*model.Session, bool) {
	s, ok := t[key]
	return s, ok
}

func (t mapTable) put(key string, s *model.Session) { t[key] = s }
func (t mapTable) len() int                         { return len(t) }

type lruTable struct {
	cache *expirable.LRU[string, *model.Session]
}

func (t *lruTable) get(key string) (*model.Session, bool) { return t.cache.Peek(key) }
func (t *lruTable) put(key string, s *model.Session)      { t.cache.Add(key, s) }
func (t *lruTable) len() int                              { return t.cache.Len() }
