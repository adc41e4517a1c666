package repository

import "time"

// Options holds the retention limits shared by every backend.
type Options struct {
	MaxMessages  int
	MaxDocuments int
}

// LRUOptions bounds the lru backend.
type LRUOptions struct {
	Size int
	TTL  time.Duration
}

const (
	DefaultLRUSize = 10000
	DefaultLRUTTL  = 24 * time.Hour
)
