package ui

import (
	"io"
	"log"
	"net/http"

	"autoeda/internal/errors"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes is the default upload size cap.
const maxUploadBytes = 64 << 20

// handleHealth reports process liveness independent of the pipeline.
func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// handleAnalyze runs the full analysis pipeline for one uploaded file.
func (s *Server) handleAnalyze(c *gin.Context) {
	if err := s.analysisSlots.Acquire(c.Request.Context(), 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "server busy, please retry"})
		return
	}
	defer s.analysisSlots.Release(1)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("[handleAnalyze] FAILED - No file uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file uploaded"})
		return
	}
	defer file.Close()

	// Read one byte past the cap so an oversized upload is detected and
	// rejected rather than truncated into a silently partial dataset.
	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		log.Printf("[handleAnalyze] FAILED - Could not read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to read uploaded file"})
		return
	}
	if int64(len(data)) > s.maxUpload {
		log.Printf("[handleAnalyze] FAILED - Upload %s exceeds %d bytes", header.Filename, s.maxUpload)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "file too large"})
		return
	}

	report, err := s.service.Analyze(c.Request.Context(), header.Filename, data)
	if err != nil {
		status := errors.HTTPStatus(err)
		log.Printf("[handleAnalyze] FAILED - %s: %v (status %d)", header.Filename, err, status)
		c.JSON(status, gin.H{"detail": err.Error()})
		return
	}

	log.Printf("[handleAnalyze] Completed %s: %d univariate, %d pairwise graphs",
		header.Filename, len(report.UnivariateGraphs), len(report.PairwiseGraphs))
	c.JSON(http.StatusOK, report)
}

type chatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// handleChat passes a raw prompt through to the oracle.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "prompt is required"})
		return
	}

	response, err := s.oracle.Chat(c.Request.Context(), req.Prompt)
	if err != nil {
		status := errors.HTTPStatus(err)
		c.JSON(status, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
