package storage

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadURLs reads one profile URL per line. Blank lines and lines starting
// with # are skipped. A "label,url" line yields its url. Duplicates are
// dropped, keeping the first occurrence.
func LoadURLs(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read urls file: %w", err)
	}
	defer f.Close()

	var urls []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		url := line
		if strings.Contains(line, ",") {
			parts := strings.SplitN(line, ",", 2)
			url = strings.TrimSpace(parts[1])
		}
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan urls file: %w", err)
	}

	return urls, nil
}
