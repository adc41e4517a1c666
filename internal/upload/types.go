package upload

// UploadedFile is one file received from a client, validated once at the
// boundary before anything else touches it.
type UploadedFile struct {
	Bytes             []byte
	DeclaredMediaType string
	OriginalName      string
}

// Size returns the byte length of the file.
func (f UploadedFile) Size() int64 {
	return int64(len(f.Bytes))
}

// SupportedTypes are the media types the extractor can read. Any configured
// allow-list must be a subset.
var SupportedTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// Supported reports whether mediaType is one of SupportedTypes.
func Supported(mediaType string) bool {
	mediaType = NormalizeMediaType(mediaType)
	for _, t := range SupportedTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}

// Config controls what the gate accepts.
type Config struct {
	MaxSizeBytes  int64
	MaxFiles      int // 0 means no limit
	AllowedTypes  []string
	VerifyContent bool
}
