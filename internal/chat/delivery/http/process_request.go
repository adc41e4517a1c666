package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-review-tutor/internal/upload"
)

const (
	// SessionHeader carries the session key. It wins over the body field.
	SessionHeader = "X-Session-Id"

	formFieldFile = "file"

	// formOverhead covers the text fields and part headers of a multipart body.
	formOverhead = 1 << 20
)

// maxBodyBytes is the largest body a request with MaxFiles full-size files
// can have, or 0 when unbounded.
func (h *handler) maxBodyBytes() int64 {
	if h.cfg.MaxFiles <= 0 || h.cfg.MaxUploadBytes <= 0 {
		return 0
	}
	return int64(h.cfg.MaxFiles)*(h.cfg.MaxUploadBytes+1) + formOverhead
}

// bodyError keeps an oversized body distinct from a malformed one.
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}

// processChatReq reads a JSON or multipart chat request.
func (h *handler) processChatReq(c *gin.Context) (chatReq, error) {
	var req chatReq

	if limit := h.maxBodyBytes(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	switch c.ContentType() {
	case gin.MIMEJSON:
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, bodyError(err)
		}

	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return req, bodyError(err)
		}
		req.Prompt = formValue(form, "prompt")
		req.SessionID = formValue(form, "session_id")
		if raw := formValue(form, "messages"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Messages); err != nil {
				return req, fmt.Errorf("%w: messages: %v", errInvalidBody, err)
			}
		}
		if h.cfg.MaxFiles > 0 && len(form.File[formFieldFile]) > h.cfg.MaxFiles {
			return req, fmt.Errorf("%w: %d files, limit is %d", errTooManyFiles, len(form.File[formFieldFile]), h.cfg.MaxFiles)
		}
		files, err := h.readFiles(form.File[formFieldFile])
		if err != nil {
			return req, err
		}
		req.Files = files

	default:
		return req, errUnsupportedContentType
	}

	if id := c.GetHeader(SessionHeader); id != "" {
		req.SessionID = id
	}
	return req, nil
}

// readFiles reads each part up to one byte past the size limit.
func (h *handler) readFiles(headers []*multipart.FileHeader) ([]upload.UploadedFile, error) {
	files := make([]upload.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", errInvalidBody, fh.Filename, err)
		}

		r := io.Reader(f)
		if h.cfg.MaxUploadBytes > 0 {
			r = io.LimitReader(f, h.cfg.MaxUploadBytes+1)
		}
		data, err := io.ReadAll(r)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", errInvalidBody, fh.Filename, err)
		}

		files = append(files, upload.UploadedFile{
			Bytes:             data,
			DeclaredMediaType: fh.Header.Get("Content-Type"),
			OriginalName:      fh.Filename,
		})
	}
	return files, nil
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
