package extract

import (
	"time"

	"content-review-tutor/pkg/filestore"
)

// Label numbering policies.
const (
	NumberingPerFile   = "per_file"
	NumberingCrossFile = "cross_file"
)

const DefaultTimeout = 60 * time.Second

// Source is one stored upload awaiting extraction.
type Source struct {
	Ref       filestore.Ref
	MediaType string
}

// Config controls extraction behavior.
type Config struct {
	Timeout        time.Duration
	LabelNumbering string
}
