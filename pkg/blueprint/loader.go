package blueprint

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/leanware/bpnav/pkg/models"
)

// Large blueprints have statements with pages of processed text on a
// single line, so the scanner buffer needs room beyond the default 64K.
const maxLineBytes = 8 * 1024 * 1024

// LoadResult is the outcome of reading an extraction cache file.
type LoadResult struct {
	Items            []*models.Item
	SkippedLines     int // lines that were not valid JSON
	DroppedUnlabeled int // records without a blueprint label
}

// Load reads an extraction cache: line-delimited JSON, one record per
// line, or (as the raw extractor emits it) one JSON array of records. A
// missing file means "no data yet" and yields an empty result. Individual
// lines that fail to parse are skipped with a warning; records that never
// got a label are dropped. Only an actual read failure returns an error,
// so callers can keep their previous tree intact.
func Load(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{}, nil
		}
		return nil, fmt.Errorf("read blueprint cache: %w", err)
	}

	// A record line always starts with '{'; a whole-file array never does.
	if trimmed := strings.TrimLeftFunc(string(data), unicode.IsSpace); strings.HasPrefix(trimmed, "[") {
		return loadArray(path, []byte(trimmed))
	}
	return loadLines(path, data)
}

func loadArray(path string, data []byte) (*LoadResult, error) {
	var items []*models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse blueprint cache %s: %w", path, err)
	}

	res := &LoadResult{}
	for _, item := range items {
		if !item.Labeled() {
			res.DroppedUnlabeled++
			continue
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

func loadLines(path string, data []byte) (*LoadResult, error) {
	res := &LoadResult{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		item := &models.Item{}
		if err := json.Unmarshal([]byte(line), item); err != nil {
			res.SkippedLines++
			logrus.WithFields(logrus.Fields{
				"file": path,
				"line": lineNo,
			}).Warnf("skipping malformed blueprint record: %v", err)
			continue
		}

		if !item.Labeled() {
			res.DroppedUnlabeled++
			continue
		}
		res.Items = append(res.Items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read blueprint cache: %w", err)
	}

	if res.SkippedLines > 0 {
		logrus.Warnf("blueprint cache %s: skipped %d malformed line(s)", path, res.SkippedLines)
	}
	return res, nil
}
