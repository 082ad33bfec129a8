package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pixelsteg/handlers"
	"pixelsteg/imgio"
	"pixelsteg/stego"
)

func main() {
	args := os.Args[1:]
	switch {
	case len(args) == 0:
		usage()
	case args[0] == "serve":
		serve()
	case len(args) == 1:
		if err := inspect(args[0]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case len(args) == 3:
		if err := embed(args[0], args[1], args[2]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s                            Show this help\n", prog)
	fmt.Printf("  %s serve                      Start the HTTP API (PORT env, default 8080)\n", prog)
	fmt.Printf("  %s <image>                    Report capacity and extract any hidden payload\n", prog)
	fmt.Printf("  %s <image> <payload> <output> Hide payload inside image, write output\n", prog)
}

// inspect prints the per-level capacity of an image and attempts a
// full decode. A recovered payload is written to its embedded
// filename in the current directory.
func inspect(imagePath string) error {
	array, err := imgio.Load(imagePath)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %dx%d, %d channels, %d subpixels\n",
		imagePath, array.Width, array.Height, array.Channels, array.Subpixels())
	for _, level := range stego.Levels {
		fmt.Printf("  capacity at %d bits/subpixel: %d bytes\n",
			level, stego.CapacityBytes(array.Subpixels(), level))
	}

	payload, err := stego.Decode(array, 0)
	if errors.Is(err, stego.ErrNoPayload) {
		fmt.Println("no payload")
		return nil
	}
	if err != nil {
		return err
	}

	outName := payload.Filename
	if outName == "" {
		outName = "payload.bin"
	}
	outName = filepath.Base(outName)
	if err := os.WriteFile(outName, payload.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	fmt.Printf("payload found: %q, %d bytes, written to %s\n", payload.Filename, len(payload.Data), outName)
	return nil
}

// embed hides payloadPath inside imagePath and writes the stego image
// to outputPath.
func embed(imagePath, payloadPath, outputPath string) error {
	cover, err := imgio.Load(imagePath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	payload := &stego.Payload{
		Filename: filepath.Base(payloadPath),
		Data:     data,
	}
	stegoArray, err := stego.Encode(cover, payload)
	if err != nil {
		return err
	}

	if err := imgio.Save(stegoArray, outputPath); err != nil {
		return err
	}

	header, err := stego.Detect(stegoArray)
	if err != nil {
		return fmt.Errorf("embedded payload failed verification: %w", err)
	}
	fmt.Printf("embedded %d bytes at %d bits/subpixel, PSNR %.2f dB, wrote %s\n",
		len(data), header.Level, imgio.PSNR(cover, stegoArray), outputPath)
	return nil
}

// serve runs the HTTP API, the same surface as the CLI but for remote
// callers.
func serve() {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{"X-Stego-PSNR", "X-Stego-Level", "Content-Disposition"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	stegoHandler := handlers.NewStegoHandler()

	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		group := api.Group("/stego")
		{
			group.POST("/encode", stegoHandler.EncodeImage)
			group.POST("/decode", stegoHandler.DecodeImage)
			group.POST("/inspect", stegoHandler.InspectImage)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/encode  - Hide a secret file inside an image (returns stego PNG)")
	log.Printf("  POST /api/v1/stego/decode  - Extract the hidden file from a stego image")
	log.Printf("  POST /api/v1/stego/inspect - Report capacity per level and payload presence")
	log.Printf("  GET  /api/v1/health        - Health check")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
