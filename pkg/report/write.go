package report

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
)

// Marshal encodes rep as indented JSON. Non-ASCII text and HTML
// characters are written as-is.
func Marshal(rep Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write persists rep to path, replacing any previous content, and returns
// the blake3 digest of the bytes written.
func Write(path string, rep Report) (string, error) {
	data, err := Marshal(rep)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // report is meant to be readable by CI
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Read loads a report previously written by Write.
func Read(path string) (Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading a user-supplied report path
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}
	return rep, nil
}
