// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"pixelsteg/imgio"
	"pixelsteg/models"
	"pixelsteg/stego"
)

const maxUploadBytes = 64 << 20

type StegoHandler struct {
	// Workers is the fan-out of the decode path; 0 means one worker
	// per CPU.
	Workers int
}

func NewStegoHandler() *StegoHandler {
	return &StegoHandler{}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Image steganography API is running",
		"version": "1.0.0",
	})
}

// EncodeImage embeds an uploaded secret file into an uploaded carrier
// image and streams the stego image back.
func (h *StegoHandler) EncodeImage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	imageData, imageHeader, err := readFormFile(c, "image_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Carrier image is required: %v", err),
		})
		return
	}
	secretData, secretHeader, err := readFormFile(c, "secret_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Secret file is required: %v", err),
		})
		return
	}

	cover, err := imgio.Decode(imageData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode carrier image: %v", err),
		})
		return
	}

	payload := &stego.Payload{
		Filename: filepath.Base(secretHeader.Filename),
		Data:     secretData,
	}
	stegoArray, err := stego.Encode(cover, payload)
	if err != nil {
		status := http.StatusInternalServerError
		var tooLarge *stego.PayloadTooLargeError
		if errors.As(err, &tooLarge) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed secret data: %v", err),
		})
		return
	}

	// The chosen level is readable straight back out of the result.
	header, err := stego.Detect(stegoArray)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Embedded payload failed verification: %v", err),
		})
		return
	}

	outputData, err := stegoArray.Encode("png")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode stego image: %v", err),
		})
		return
	}

	base := strings.TrimSuffix(imageHeader.Filename, filepath.Ext(imageHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego.png", base)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(outputData)))

	c.Header("X-Stego-Method", "Image LSB")
	c.Header("X-Stego-Level", fmt.Sprintf("%d", header.Level))
	c.Header("X-Stego-PSNR", fmt.Sprintf("%.2f", imgio.PSNR(cover, stegoArray)))

	c.Data(http.StatusOK, "image/png", outputData)
}

// DecodeImage extracts the payload hidden in an uploaded stego image
// and streams it back under its original filename.
func (h *StegoHandler) DecodeImage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	stegoData, _, err := readFormFile(c, "stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Stego image is required: %v", err),
		})
		return
	}

	array, err := imgio.Decode(stegoData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode stego image: %v", err),
		})
		return
	}

	payload, err := stego.Decode(array, h.Workers)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, stego.ErrNoPayload) {
			status = http.StatusNotFound
		}
		c.JSON(status, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract secret data: %v", err),
		})
		return
	}

	filename := payload.Filename
	if filename == "" {
		filename = "payload.bin"
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(payload.Data)))

	c.Data(http.StatusOK, "application/octet-stream", payload.Data)
}

// InspectImage reports per-level capacity and whether the uploaded
// image already carries a payload.
func (h *StegoHandler) InspectImage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	imageData, _, err := readFormFile(c, "image_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Image is required: %v", err),
		})
		return
	}

	array, err := imgio.Decode(imageData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode image: %v", err),
		})
		return
	}

	resp := models.InspectResponse{
		Success:  true,
		Width:    array.Width,
		Height:   array.Height,
		Channels: array.Channels,
	}
	for _, level := range stego.Levels {
		resp.Capacities = append(resp.Capacities, models.LevelCapacity{
			Level:         int(level),
			CapacityBytes: stego.CapacityBytes(array.Subpixels(), level),
		})
	}

	if header, err := stego.Detect(array); err == nil {
		resp.Payload = &models.PayloadInfo{
			Filename:  header.Filename,
			SizeBytes: int(header.DataSize),
			Level:     int(header.Level),
		}
	}

	c.JSON(http.StatusOK, resp)
}

func readFormFile(c *gin.Context, field string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return data, header, nil
}
