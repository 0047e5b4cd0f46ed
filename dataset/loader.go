package dataset

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Loader fetches the static dataset files. Files come either from a local
// data directory or from an HTTP(S) base URL; the base URL wins when both
// are configured.
type Loader struct {
	DataDir string
	DataURL string

	client *http.Client
}

func NewLoader(dataDir, dataURL string) *Loader {
	return &Loader{
		DataDir: dataDir,
		DataURL: dataURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// LoadFile fetches one dataset file and parses it into rows. A missing or
// unreadable file is an error for the caller to log; downstream treats the
// resulting empty row set as "no data yet" rather than a fatal condition.
func (l *Loader) LoadFile(name string) ([]Row, error) {
	raw, err := l.fetch(name)
	if err != nil {
		return nil, err
	}
	rows := ParseTable(raw)
	log.Printf("Loaded %d rows from %s", len(rows), name)
	return rows, nil
}

func (l *Loader) fetch(name string) (string, error) {
	if l.DataURL != "" {
		return l.fetchURL(strings.TrimRight(l.DataURL, "/") + "/" + name)
	}
	data, err := os.ReadFile(filepath.Join(l.DataDir, name))
	if err != nil {
		return "", fmt.Errorf("error reading dataset file %s: %v", name, err)
	}
	return string(data), nil
}

func (l *Loader) fetchURL(url string) (string, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error fetching %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response from %s: %v", url, err)
	}
	return string(data), nil
}
