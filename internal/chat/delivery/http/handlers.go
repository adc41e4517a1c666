package http

import (
	"github.com/gin-gonic/gin"

	"content-review-tutor/pkg/response"
)

// Chat godoc
// @Summary     Send a chat turn
// @Description Appends optional history and uploaded documents to the session, asks the tutor and returns its reply.
// @Description Accepts application/json or multipart/form-data (fields prompt, messages as a JSON string, session_id and repeated file).
// @Tags        Chat
// @Accept      json
// @Accept      mpfd
// @Produce     json
// @Param       X-Session-Id header   string  false "Session key, wins over session_id"
// @Param       body         body     chatReq false "JSON request"
// @Param       file         formData file    false "JPEG, PNG or PDF upload (repeatable)"
// @Success     200 {object} response.Resp{data=chatResp}
// @Failure     400 {object} response.Resp "Validation error"
// @Failure     500 {object} response.Resp "Extraction or completion failure"
// @Router      /api/v1/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		h.l.Warnf(ctx, "chat.delivery.http.Chat: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	output, err := h.uc.Chat(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "chat.delivery.http.Chat: %v", err)
		if output.SessionKey != "" {
			c.Header(SessionHeader, output.SessionKey)
		}
		response.Error(c, h.mapError(err))
		return
	}

	c.Header(SessionHeader, output.SessionKey)
	response.OK(c, h.newChatResp(output))
}

// History godoc
// @Summary     Get session history
// @Description Returns the stored messages and document units of a session.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session key"
// @Success     200 {object} response.Resp{data=historyResp}
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/chat/sessions/{id} [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.History(ctx, c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "chat.delivery.http.History: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newHistoryResp(output))
}
