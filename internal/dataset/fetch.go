package dataset

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xuri/excelize/v2"

	"github.com/joaomarcelooneua/CaliaDash/internal/logger"
	"github.com/joaomarcelooneua/CaliaDash/internal/types"
)

var httpClient = &http.Client{
	Timeout: 20 * time.Second,
}

// LoadURL downloads the workbook at url and parses it like Load. Transient
// HTTP failures (network errors, 5xx) are retried with exponential backoff;
// 4xx responses fail immediately.
func LoadURL(url string) ([]types.RawRecord, error) {
	log := logger.New().WithField("component", "dataset.fetch").WithField("url", url)
	log.Info("downloading inventory workbook")

	data, err := download(url)
	if err != nil {
		log.WithError(err).Error("download failed")
		return nil, &IngestError{Source: url, Err: err}
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		log.WithError(err).Error("parse failed")
		return nil, &IngestError{Source: url, Err: err}
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		log.WithError(err).Error("read failed")
		return nil, &IngestError{Source: url, Err: err}
	}
	log.WithField("rows", len(records)).Info("remote workbook loaded")
	return records, nil
}

func download(url string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	var data []byte
	operation := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %s", resp.Status)
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("unexpected status: %s", resp.Status))
		}
		data, err = io.ReadAll(resp.Body)
		return err
	}

	if err := backoff.Retry(operation, bo); err != nil {
		return nil, err
	}
	return data, nil
}
