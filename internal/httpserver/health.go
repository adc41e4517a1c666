package httpserver

import (
	"github.com/gin-gonic/gin"

	"content-review-tutor/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Content review tutor is up"
	HealthVersion = "1.0.0"
	ServiceName   = "content-review-tutor"
)

func (srv HTTPServer) status(state string) gin.H {
	return gin.H{
		"status":      state,
		"message":     HealthMessage,
		"version":     HealthVersion,
		"service":     ServiceName,
		"environment": srv.environment,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.status("healthy"))
}

// readyCheck reports readiness along with the live session count and the
// provider chain.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	body := srv.status("ready")
	if srv.sessions != nil {
		body["sessions"] = srv.sessions.Len(c.Request.Context())
	}
	if srv.llm != nil {
		providers := srv.llm.Providers()
		names := make([]string, len(providers))
		for i, p := range providers {
			names[i] = p.Name() + "/" + p.Model()
		}
		body["providers"] = names
	}
	response.OK(c, body)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.status("alive"))
}
