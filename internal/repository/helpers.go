package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tododoc/internal/domain"
)

// timeLayout keeps sub-second precision so updated_at orders writes made
// within the same second.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// encodeBody serializes the document tree. A nil root is stored as an
// empty document.
func encodeBody(root *domain.Root) (string, error) {
	if root == nil {
		root = domain.NewRoot()
	}
	data, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("encoding document body: %w", err)
	}
	return string(data), nil
}

func decodeBody(body string) (*domain.Root, error) {
	var root domain.Root
	if err := json.Unmarshal([]byte(body), &root); err != nil {
		return nil, fmt.Errorf("decoding document body: %w", err)
	}
	return &root, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
