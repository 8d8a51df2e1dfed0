//go:build !ocr

// Package ocr recognizes words in scanned page images and returns them as
// positioned tokens.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// Recognition returns ErrOCRNotEnabled; the word conversion helpers and
// ImageSize work in both builds.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import "github.com/tsawler/spatialtext/model"

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// Words returns an error indicating OCR support is not enabled.
func (c *Client) Words(imageData []byte) ([]WordBox, error) {
	return nil, ErrOCRNotEnabled
}

// Tokens returns an error indicating OCR support is not enabled.
func (c *Client) Tokens(imageData []byte) ([]model.Token, error) {
	return nil, ErrOCRNotEnabled
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode returns an error indicating OCR support is not enabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}
