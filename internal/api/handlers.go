package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gosupply/domain/intent"
	apperrors "gosupply/internal/errors"
	"gosupply/internal/report"
)

type intentRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"tools":           len(s.tools.List()),
			"intent_provider": s.intent != nil,
		})
	}
}

func (s *Server) handleListTools() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tools": s.tools.List()})
	}
}

func (s *Server) handleCallTool() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			s.writeError(c, apperrors.InvalidArgument("failed to read request body"))
			return
		}
		out, err := s.tools.Call(c.Request.Context(), c.Param("name"), json.RawMessage(body))
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": out})
	}
}

// handleRecommend runs a scenario pipeline on structured task arguments
func (s *Server) handleRecommend() gin.HandlerFunc {
	return func(c *gin.Context) {
		task, err := intent.ParseTaskKind(c.Param("task"))
		if err != nil {
			s.writeError(c, err)
			return
		}
		body, err := c.GetRawData()
		if err != nil {
			s.writeError(c, apperrors.InvalidArgument("failed to read request body"))
			return
		}
		args, err := intent.Decode(task, body)
		if err != nil {
			s.writeError(c, err)
			return
		}
		rec, err := s.services.Recommend(c.Request.Context(), args)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// handleIntent parses a free-text request and runs the matching pipeline
func (s *Server) handleIntent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.intent == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no intent provider configured"})
			return
		}
		task, err := intent.ParseTaskKind(c.Param("task"))
		if err != nil {
			s.writeError(c, err)
			return
		}
		var req intentRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
			s.writeError(c, apperrors.InvalidArgument("request body must be {\"query\": \"...\"}"))
			return
		}
		args, err := s.intent.Parse(c.Request.Context(), task, req.Query)
		if err != nil {
			s.writeError(c, err)
			return
		}
		rec, err := s.services.Recommend(c.Request.Context(), args)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"arguments": args, "recommendation": rec})
	}
}

// handleReport renders posted records; ?format=html|markdown
func (s *Server) handleReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			s.writeError(c, apperrors.InvalidArgument("failed to read request body"))
			return
		}
		records, err := report.DecodeRecords(body)
		if err != nil {
			s.writeError(c, err)
			return
		}
		out, contentType, err := s.reports.Render(c.DefaultQuery("format", report.FormatMarkdown), records)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.Data(http.StatusOK, contentType, out)
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound, apperrors.CodeUnknownTool:
		status = http.StatusNotFound
	case apperrors.CodeExternalService:
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
