// Package api exposes embed/extract as an optional HTTP surface,
// wrapping internal/codec the way the teacher's handlers package wraps its
// stego package. This is an additional delivery mechanism alongside the CLI,
// not a replacement for it.
package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mp3stego/internal/codec"
	"mp3stego/internal/diag"
)

// StegoResponse mirrors the JSON envelope used for non-binary responses.
type StegoResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

// Handler holds no state; it exists to group routes under one receiver and
// leave room for shared dependencies (timeouts, limits) later.
type Handler struct{}

// NewHandler builds a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "mp3stego API is running",
	})
}

// Embed handles POST /api/v1/stego/embed: multipart form with cover_file,
// secret_file, n, key, cipher, random. Responds with the stego MP3 bytes.
func (h *Handler) Embed(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, StegoResponse{Success: false, Message: fmt.Sprintf("failed to parse form: %v", err)})
		return
	}

	k, err := strconv.Atoi(c.PostForm("n"))
	if err != nil || k < 1 || k > 4 {
		c.JSON(http.StatusBadRequest, StegoResponse{Success: false, Message: "n must be between 1 and 4"})
		return
	}

	key := c.PostForm("key")
	useCipher := c.PostForm("cipher") == "true"
	useRandom := c.PostForm("random") == "true"

	coverFile, _, err := c.Request.FormFile("cover_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, StegoResponse{Success: false, Message: "cover_file is required"})
		return
	}
	defer coverFile.Close()

	secretFile, secretHeader, err := c.Request.FormFile("secret_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, StegoResponse{Success: false, Message: "secret_file is required"})
		return
	}
	defer secretFile.Close()

	coverData, err := io.ReadAll(coverFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, StegoResponse{Success: false, Message: fmt.Sprintf("read cover: %v", err)})
		return
	}
	secretData, err := io.ReadAll(secretFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, StegoResponse{Success: false, Message: fmt.Sprintf("read secret: %v", err)})
		return
	}

	cfg := codec.EmbedConfig{K: k, Encrypt: useCipher, RandomPosition: useRandom, Key: key}
	stego, err := codec.Embed(coverData, secretHeader.Filename, secretData, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, StegoResponse{Success: false, Message: err.Error()})
		return
	}

	outputFilename := strings.TrimSuffix(secretHeader.Filename, filepath.Ext(secretHeader.Filename)) + "_stego.mp3"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("X-Stego-LSB-Width", strconv.Itoa(k))
	c.Data(http.StatusOK, "audio/mpeg", stego)
}

// Extract handles POST /api/v1/stego/extract: multipart form with
// stego_file, key, cipher, random. Responds with the recovered file bytes.
func (h *Handler) Extract(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, StegoResponse{Success: false, Message: fmt.Sprintf("failed to parse form: %v", err)})
		return
	}

	key := c.PostForm("key")
	useCipher := c.PostForm("cipher") == "true"
	useRandom := c.PostForm("random") == "true"

	stegoFile, _, err := c.Request.FormFile("stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, StegoResponse{Success: false, Message: "stego_file is required"})
		return
	}
	defer stegoFile.Close()

	stegoData, err := io.ReadAll(stegoFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, StegoResponse{Success: false, Message: fmt.Sprintf("read stego file: %v", err)})
		return
	}

	ch := diag.New()
	cfg := codec.ExtractConfig{Encrypted: useCipher, RandomPosition: useRandom, Key: key}
	result, err := codec.Extract(stegoData, cfg, ch)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, StegoResponse{Success: false, Message: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Header("X-Stego-LSB-Width", strconv.Itoa(result.K))
	if len(ch.Warnings()) > 0 {
		c.Header("X-Stego-Warnings", strings.Join(ch.Warnings(), "; "))
	}
	c.Data(http.StatusOK, "application/octet-stream", result.Payload)
}
