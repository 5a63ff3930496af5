package venv

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/apex/log"
	"github.com/avast/retry-go"
	"github.com/ch-iv/litestar-manage/cli/util"
)

var (
	downloadAttempts uint = 3
	downloadDelay         = time.Second
	downloadTimeout       = 60 * time.Second
)

// statusError is an unexpected HTTP response status.
type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("HTTP request error: %s", http.StatusText(e.code))
}

// scriptName validates the script URL and returns the script file name.
func scriptName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", util.ErrInvalidArgument, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("URL must start with 'http:' or 'https:': %w",
			util.ErrInvalidArgument)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", fmt.Errorf("URL %q has no file name: %w", rawURL, util.ErrInvalidArgument)
	}
	return name, nil
}

func fetch(source, dst string) error {
	client := http.Client{Timeout: downloadTimeout}
	req, err := http.NewRequest(http.MethodGet, source, http.NoBody)
	if err != nil {
		return err
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return statusError{code: res.StatusCode}
	}

	file, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(file, res.Body); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// downloadFile downloads source to dst. Network and server errors are retried.
func downloadFile(source, dst string) error {
	log.Debugf("Downloading %s to %s", source, dst)
	err := retry.Do(
		func() error {
			return fetch(source, dst)
		},
		retry.Attempts(downloadAttempts),
		retry.Delay(downloadDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var statusErr statusError
			if errors.As(err, &statusErr) {
				return statusErr.code >= http.StatusInternalServerError
			}
			var pathErr *os.PathError
			return !errors.As(err, &pathErr)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Debugf("Download attempt %d failed: %s", n+1, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", source, err)
	}
	return nil
}
