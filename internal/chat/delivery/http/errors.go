package http

import (
	"errors"
	"fmt"
	"net/http"

	"content-review-tutor/internal/chat"
	"content-review-tutor/internal/extract"
	"content-review-tutor/internal/upload"
	pkgErrors "content-review-tutor/pkg/errors"
	"content-review-tutor/pkg/llmprovider"
)

// Business error codes returned in error_code.
const (
	codeInvalidRequest     = 10001
	codeUnsupportedContent = 10002
	codeInvalidRole        = 10003
	codeOversizedFile      = 10004
	codeUnsupportedFile    = 10005
	codeSessionNotFound    = 10006
	codeTooManyFiles       = 10007
	codeBodyTooLarge       = 10008
	codeExtractionFailed   = 10101
	codeStorageFailed      = 10102
	codeUpstreamUnavail    = 10201
	codeUpstreamRejected   = 10202
)

var (
	errInvalidBody            = errors.New("invalid request body")
	errUnsupportedContentType = errors.New("unsupported Content-Type, use application/json or multipart/form-data")
	errBodyTooLarge           = errors.New("request body too large")
	errTooManyFiles           = errors.New("too many files")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	var rejectedFile *upload.RejectedError
	var rejectedUpstream *llmprovider.UpstreamRejectedError

	switch {
	case errors.Is(err, errUnsupportedContentType):
		return pkgErrors.NewHTTPError(codeUnsupportedContent, err.Error())
	case errors.Is(err, errBodyTooLarge):
		return pkgErrors.NewHTTPError(codeBodyTooLarge, err.Error())
	case errors.Is(err, errTooManyFiles), errors.Is(err, upload.ErrTooManyFiles):
		return pkgErrors.NewHTTPError(codeTooManyFiles, err.Error())
	case errors.Is(err, errInvalidBody):
		return pkgErrors.NewHTTPError(codeInvalidRequest, err.Error())
	case errors.Is(err, chat.ErrInvalidRole):
		return pkgErrors.NewHTTPError(codeInvalidRole, err.Error())

	case errors.As(err, &rejectedFile) && errors.Is(err, upload.ErrOversizedFile):
		return pkgErrors.NewHTTPError(codeOversizedFile, rejectedFile.Error())
	case errors.As(err, &rejectedFile):
		return pkgErrors.NewHTTPError(codeUnsupportedFile, rejectedFile.Error())

	case errors.Is(err, chat.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(codeSessionNotFound, err.Error()).WithStatus(http.StatusNotFound)

	case errors.Is(err, extract.ErrExtractionFailed):
		return pkgErrors.NewInternalError(codeExtractionFailed, "failed to extract text from one of the uploaded files")
	case errors.Is(err, chat.ErrStorageFailed):
		return pkgErrors.NewInternalError(codeStorageFailed, chat.ErrStorageFailed.Error())

	case errors.Is(err, llmprovider.ErrUpstreamUnavailable):
		return pkgErrors.NewInternalError(codeUpstreamUnavail, h.upstreamMessage(llmprovider.ErrUpstreamUnavailable.Error(), err))
	case errors.As(err, &rejectedUpstream):
		return pkgErrors.NewInternalError(codeUpstreamRejected, h.upstreamMessage("completion request rejected", err))

	default:
		return pkgErrors.ErrInternalServerError
	}
}

// upstreamMessage redacts provider detail unless exposure is enabled.
func (h *handler) upstreamMessage(generic string, err error) string {
	if h.cfg.ExposeUpstreamErrors {
		return fmt.Sprintf("%s: %v", generic, err)
	}
	return generic
}
