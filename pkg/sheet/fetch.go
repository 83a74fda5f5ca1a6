package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// maxCSVSize caps worksheet downloads; exports are tiny, so anything larger
// means the URL is wrong.
const maxCSVSize = 20 * 1024 * 1024

var httpClient = &http.Client{Timeout: 30 * time.Second}

// FetchCSV downloads a worksheet CSV export and parses every row. Rows are
// ragged (panels and title rows have differing widths), so no field count
// is enforced.
func FetchCSV(ctx context.Context, url string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode)
	}

	return readCSV(io.LimitReader(resp.Body, maxCSVSize))
}

// ReadCSVFile parses a locally saved worksheet export, for offline runs.
func ReadCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}
