package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sefazor/campus-events-backend/internal/config"
	"go.uber.org/zap"
)

const VariantPublic = "public"

type CloudflareImages struct {
	accountID   string
	apiToken    string
	baseURL     string
	client      *http.Client
	accountHash string // delivery hash used in imagedelivery.net URLs
	logger      *zap.Logger
}

// CloudflareImageResponse represents the response from Cloudflare Images API
type CloudflareImageResponse struct {
	Success bool `json:"success"`
	Result  struct {
		ID       string   `json:"id"`
		Variants []string `json:"variants"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func NewCloudflareImages(cfg config.CloudflareImagesConfig, logger *zap.Logger) *CloudflareImages {
	client := &http.Client{
		Timeout: 2 * time.Minute,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &CloudflareImages{
		accountID:   cfg.AccountID,
		apiToken:    cfg.Token,
		baseURL:     "https://api.cloudflare.com/client/v4",
		client:      client,
		accountHash: cfg.Hash,
		logger:      logger,
	}
}

// Save uploads the image and returns its public variant URL.
func (c *CloudflareImages) Save(ctx context.Context, filename, _ string, src io.Reader) (string, error) {
	fileBytes, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}
	if len(fileBytes) == 0 {
		return "", ErrEmptyFile
	}
	if len(fileBytes) > MaxImageSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxImageSize)
	}

	createForm := func() (*bytes.Buffer, string, error) {
		formBuf := &bytes.Buffer{}
		writer := multipart.NewWriter(formBuf)

		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(fileBytes); err != nil {
			return nil, "", fmt.Errorf("failed to copy file: %w", err)
		}
		if err := writer.WriteField("requireSignedURLs", "false"); err != nil {
			return nil, "", fmt.Errorf("failed to add form field: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("failed to close writer: %w", err)
		}
		return formBuf, writer.FormDataContentType(), nil
	}

	formBuf, contentType, err := createForm()
	if err != nil {
		return "", err
	}

	uploadURL := fmt.Sprintf("%s/accounts/%s/images/v1", c.baseURL, c.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, formBuf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// HTTP/2 retries need a fresh body.
	req.GetBody = func() (io.ReadCloser, error) {
		newForm, _, err := createForm()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(newForm), nil
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("cloudflare returned non-OK status: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var response CloudflareImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !response.Success {
		return "", fmt.Errorf("cloudflare returned error: %v", response.Errors)
	}

	c.logger.Debug("image uploaded to Cloudflare Images", zap.String("image_id", response.Result.ID))
	return c.GetVariantURL(response.Result.ID, VariantPublic), nil
}

func (c *CloudflareImages) GetVariantURL(imageID string, variant string) string {
	return fmt.Sprintf("https://imagedelivery.net/%s/%s/%s", c.accountHash, imageID, variant)
}
