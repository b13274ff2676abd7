package xls_downloader_client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/internal/config"
)

// XlsDownloaderClient источник файла расписания по http.
// Запросы не повторяются: ошибка сразу уходит вызывающему.
type XlsDownloaderClient struct {
	mu  sync.RWMutex
	url string

	contentTypes []string
	client       *http.Client
}

var _ app.SourceFetcher = &XlsDownloaderClient{}

func New(cfg *config.Config) *XlsDownloaderClient {
	return NewWithClient(cfg, &http.Client{Timeout: cfg.Schedule.FetchTimeout})
}

func NewWithClient(cfg *config.Config, client *http.Client) *XlsDownloaderClient {
	return &XlsDownloaderClient{
		url:          cfg.Schedule.DownloadURL,
		contentTypes: cfg.Schedule.ContentTypes,
		client:       client,
	}
}

func (this *XlsDownloaderClient) URL() string {
	this.mu.RLock()
	defer this.mu.RUnlock()
	return this.url
}

func (this *XlsDownloaderClient) Probe(ctx context.Context) (*app.SourceMeta, error) {
	url := this.URL()
	if url == "" {
		return nil, app.ErrSourceUnconfigured
	}
	meta, _, err := this.fetch(ctx, url, true)
	return meta, err
}

func (this *XlsDownloaderClient) Download(ctx context.Context) ([]byte, error) {
	url := this.URL()
	if url == "" {
		return nil, app.ErrSourceUnconfigured
	}
	_, data, err := this.fetch(ctx, url, false)
	return data, err
}

// SetURL ссылка заменяется только если источник по ней отвечает как надо
func (this *XlsDownloaderClient) SetURL(ctx context.Context, url string) error {
	if _, _, err := this.fetch(ctx, url, true); err != nil {
		return err
	}

	this.mu.Lock()
	this.url = url
	this.mu.Unlock()
	return nil
}

func (this *XlsDownloaderClient) fetch(ctx context.Context, url string, head bool) (*app.SourceMeta, []byte, error) {
	method := http.MethodGet
	if head {
		method = http.MethodHead
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := this.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &app.ProbeError{Kind: app.ProbeBadStatus, StatusCode: resp.StatusCode}
	}

	var (
		contentType = resp.Header.Get("Content-Type")
		etag        = resp.Header.Get("ETag")
		uploadedAt  = resp.Header.Get("Last-Modified")
		requestedAt = resp.Header.Get("Date")
	)
	if contentType == "" || etag == "" || uploadedAt == "" || requestedAt == "" {
		return nil, nil, &app.ProbeError{Kind: app.ProbeMissingMetadata}
	}

	if !this.allowed(contentType) {
		return nil, nil, &app.ProbeError{Kind: app.ProbeBadContentType, ContentType: contentType}
	}

	meta := &app.SourceMeta{ContentID: etag}
	if meta.UploadedAt, err = http.ParseTime(uploadedAt); err != nil {
		return nil, nil, &app.ProbeError{Kind: app.ProbeMissingMetadata}
	}
	if meta.RequestedAt, err = http.ParseTime(requestedAt); err != nil {
		return nil, nil, &app.ProbeError{Kind: app.ProbeMissingMetadata}
	}

	if head {
		return meta, nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}
	return meta, data, nil
}

func (this *XlsDownloaderClient) allowed(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(contentType)
	}
	return slices.Contains(this.contentTypes, strings.ToLower(mediaType))
}
