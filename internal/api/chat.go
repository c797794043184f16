package api

import (
	"net/http"

	"aebox-api/internal/response"

	"github.com/gin-gonic/gin"
)

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ChatWithOpenAI proxies a single-turn prompt to the completion API
func ChatWithOpenAI(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Prompt is required")
		return
	}

	if !chatLimiter.Allow(c.ClientIP()) {
		response.ErrorJSON(c, http.StatusTooManyRequests, "Too many requests, slow down")
		return
	}

	reply, err := openAIService.GenerateResponse(req.Prompt)
	if err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to generate response: "+err.Error())
		return
	}

	response.SuccessJSON(c, gin.H{"reply": reply})
}
