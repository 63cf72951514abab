package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"clicknet/internal/observability"

	"github.com/google/uuid"
)

const maxImageBytes = 10 * 1024 * 1024

var extByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// SaveDataURL decodes a base64 data URL (as sent by the SPA for post images
// and profile photos), stores the bytes under a fresh key below prefix, and
// returns the storage key and public URL.
func SaveDataURL(ctx context.Context, store ObjectStore, prefix, dataURL string) (key, url string, err error) {
	mime, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(mime, "data:") {
		return "", "", fmt.Errorf("malformed image data")
	}
	mime = strings.TrimSuffix(strings.TrimPrefix(mime, "data:"), ";base64")

	ext, ok := extByMIME[mime]
	if !ok {
		return "", "", fmt.Errorf("unsupported image type %q", mime)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", fmt.Errorf("decoding image data: %w", err)
	}
	if len(data) == 0 {
		return "", "", fmt.Errorf("empty image data")
	}
	if len(data) > maxImageBytes {
		return "", "", fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
	}

	key = fmt.Sprintf("%s/%s.%s", prefix, uuid.NewString(), ext)
	if err := store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mime); err != nil {
		observability.StorageOperations.WithLabelValues("put", "error").Inc()
		return "", "", fmt.Errorf("storing image: %w", err)
	}
	observability.StorageOperations.WithLabelValues("put", "ok").Inc()

	return key, store.URL(key), nil
}

// DeleteObject removes a stored object, recording the outcome. A missing key
// is a no-op.
func DeleteObject(ctx context.Context, store ObjectStore, key string) error {
	if store == nil || key == "" {
		return nil
	}
	if err := store.Delete(ctx, key); err != nil {
		observability.StorageOperations.WithLabelValues("delete", "error").Inc()
		return err
	}
	observability.StorageOperations.WithLabelValues("delete", "ok").Inc()
	return nil
}

// IsDataURL reports whether s looks like an inline base64 data URL rather
// than an already-stored URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}
