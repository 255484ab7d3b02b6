package words

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Download fetches url into path unless path already exists.
// The body is written to a temporary file first so a failed transfer
// never leaves a truncated dictionary behind.
func Download(ctx context.Context, client *http.Client, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	log.Info().Str("url", url).Str("path", path).Msg("downloading dictionary")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download dictionary: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dictionary: status %d", resp.StatusCode)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("download dictionary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	log.Info().Int64("bytes", n).Str("path", path).Msg("download complete")
	return nil
}

// Ensure returns the dictionary at path, downloading it from url first if
// it is missing. When neither works the embedded dictionary is used.
// An empty url skips the download.
func Ensure(ctx context.Context, client *http.Client, url, path string) (*Dictionary, error) {
	if url != "" {
		if err := Download(ctx, client, url, path); err != nil {
			log.Warn().Err(err).Msg("dictionary download failed")
		}
	}
	d, err := Load(path)
	if err == nil && d.Len() > 0 {
		log.Debug().Int("words", d.Len()).Str("path", path).Msg("dictionary loaded")
		return d, nil
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("dictionary unavailable, using embedded words")
	} else {
		log.Warn().Str("path", path).Msg("dictionary empty, using embedded words")
	}
	return Embedded()
}
