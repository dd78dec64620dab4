package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"gradewise/internal/util"
)

// download fetches a Telegram file by ID and sniffs its type.
func (r *Router) download(ctx context.Context, fileID string) ([]byte, string, error) {
	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, "", fmt.Errorf("resolve file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	mime := util.SniffMime(data)
	if mime == "" {
		return nil, "", fmt.Errorf("unsupported file type: want JPEG, PNG or PDF")
	}
	return data, mime, nil
}
