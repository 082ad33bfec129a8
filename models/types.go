// Package models contains the types shared by the HTTP handlers.
package models

// LevelCapacity reports the total embeddable bytes (header included)
// at one encoding level.
type LevelCapacity struct {
	Level         int `json:"level"`
	CapacityBytes int `json:"capacity_bytes"`
}

// PayloadInfo describes a payload detected inside an image.
type PayloadInfo struct {
	Filename  string `json:"filename"`
	SizeBytes int    `json:"size_bytes"`
	Level     int    `json:"level"`
}

// InspectResponse is returned by the inspect endpoint: image shape,
// per-level capacity, and the embedded payload if one was found.
type InspectResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Channels   int             `json:"channels"`
	Capacities []LevelCapacity `json:"capacities"`
	Payload    *PayloadInfo    `json:"payload,omitempty"`
}

// StegoResponse is returned by the encode endpoint on failure; on
// success the stego image itself is streamed back.
type StegoResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Level   int     `json:"level,omitempty"`
	PSNR    float64 `json:"psnr,omitempty"`
}

// ExtractResponse is returned by the decode endpoint on failure; on
// success the recovered payload itself is streamed back.
type ExtractResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SecretFilename string `json:"secret_filename,omitempty"`
}
