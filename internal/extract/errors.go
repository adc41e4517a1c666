package extract

import "errors"

// ErrExtractionFailed wraps every failure that aborts extraction: engine
// errors, missing stored files, unknown media types and timeouts.
var ErrExtractionFailed = errors.New("extraction failed")
