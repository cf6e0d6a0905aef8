package peers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaClient talks to the media storage peer. Uploads get a longer
// timeout than metadata lookups.
type MediaClient struct {
	baseURL      string
	client       *http.Client
	uploadClient *http.Client
	logger       *zap.Logger
}

// NewMediaClient creates a client for the media peer.
func NewMediaClient(baseURL string, metadataTimeout, uploadTimeout time.Duration, logger *zap.Logger) *MediaClient {
	return &MediaClient{
		baseURL:      baseURL,
		client:       &http.Client{Timeout: metadataTimeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
		logger:       logger.Named("peer.media"),
	}
}

// Upload sends a media file via multipart POST. Returns nil on any failure.
func (c *MediaClient) Upload(ctx context.Context, file MediaFile, productID uuid.UUID, isThumbnail bool) *UploadResult {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.Filename))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		c.logger.Warn("media upload failed", zap.Error(err))
		return nil
	}
	if _, err := part.Write(file.Content); err != nil {
		c.logger.Warn("media upload failed", zap.Error(err))
		return nil
	}
	_ = writer.WriteField("product_id", productID.String())
	_ = writer.WriteField("is_thumbnail", strconv.FormatBool(isThumbnail))
	if err := writer.Close(); err != nil {
		c.logger.Warn("media upload failed", zap.Error(err))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(c.baseURL, "/upload"), &body)
	if err != nil {
		c.logger.Warn("media upload failed", zap.Error(err))
		return nil
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var result UploadResult
	if err := do(c.uploadClient, req, &result); err != nil {
		c.logger.Warn("media upload failed",
			zap.String("product_id", productID.String()),
			zap.Bool("is_thumbnail", isThumbnail),
			zap.Error(err))
		return nil
	}
	return &result
}

// GetThumbnailURL returns the thumbnail URL for a product, or "" when
// absent or the peer is unavailable.
func (c *MediaClient) GetThumbnailURL(ctx context.Context, productID uuid.UUID) string {
	item := c.getThumbnail(ctx, productID)
	if item == nil {
		return ""
	}
	return item.FileURL
}

// GetThumbnailID returns the thumbnail media ID for a product, or "".
func (c *MediaClient) GetThumbnailID(ctx context.Context, productID uuid.UUID) string {
	item := c.getThumbnail(ctx, productID)
	if item == nil {
		return ""
	}
	return item.ID
}

func (c *MediaClient) getThumbnail(ctx context.Context, productID uuid.UUID) *mediaItemResponse {
	var item mediaItemResponse
	endpoint := joinURL(c.baseURL, "/thumbnail?id_product="+url.QueryEscape(productID.String()))
	if err := getJSON(ctx, c.client, endpoint, Token(ctx), &item); err != nil {
		c.logger.Debug("thumbnail lookup failed", zap.String("product_id", productID.String()), zap.Error(err))
		return nil
	}
	return &item
}

// GetMediaURLs returns the non-thumbnail media URLs for a product, or
// nil when the peer is unavailable.
func (c *MediaClient) GetMediaURLs(ctx context.Context, productID uuid.UUID) []string {
	items := c.getMedia(ctx, productID)
	if items == nil {
		return nil
	}
	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.FileURL)
	}
	return urls
}

// GetMediaIDs returns the media IDs for a product, or nil when the
// peer is unavailable.
func (c *MediaClient) GetMediaIDs(ctx context.Context, productID uuid.UUID) []string {
	items := c.getMedia(ctx, productID)
	if items == nil {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (c *MediaClient) getMedia(ctx context.Context, productID uuid.UUID) []mediaItemResponse {
	var items []mediaItemResponse
	endpoint := joinURL(c.baseURL, "/media?id_product="+url.QueryEscape(productID.String()))
	if err := getJSON(ctx, c.client, endpoint, Token(ctx), &items); err != nil {
		c.logger.Debug("media lookup failed", zap.String("product_id", productID.String()), zap.Error(err))
		return nil
	}
	return items
}

// Delete removes a stored media file. Returns false on any failure.
func (c *MediaClient) Delete(ctx context.Context, mediaID string) bool {
	endpoint := joinURL(c.baseURL, "/media?id_media="+url.QueryEscape(mediaID))
	if err := sendJSON(ctx, c.client, http.MethodDelete, endpoint, Token(ctx), nil, nil); err != nil {
		c.logger.Warn("media delete failed", zap.String("media_id", mediaID), zap.Error(err))
		return false
	}
	return true
}
