package settings

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/domaintint/internal/security"
	"github.com/ulikunitz/xz"
)

// Compression selects how Export encodes its output.
type Compression int

const (
	// CompressionNone writes plain indented JSON.
	CompressionNone Compression = iota
	// CompressionXZ writes xz-compressed JSON.
	CompressionXZ
)

// maxImportSize bounds decoded import data.
const maxImportSize = 10 * 1024 * 1024

var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// Export writes s as JSON keyed by the storage keys, optionally xz-compressed.
func Export(w io.Writer, s *Settings, c Compression) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	if c != CompressionXZ {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write settings: %w", err)
		}
		return nil
	}

	xzw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := xzw.Write(data); err != nil {
		_ = xzw.Close()
		return fmt.Errorf("failed to compress settings: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return nil
}

// Import reads settings written by Export. Compressed input is detected from
// the xz magic bytes. The result is normalised.
func Import(r io.Reader) (*Settings, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if head, _ := br.Peek(len(xzMagic)); bytes.Equal(head, xzMagic) {
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		src = xzr
	}

	data, err := io.ReadAll(security.NewLimitedReader(src, maxImportSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	values := make(map[string][]byte, len(raw))
	for k, v := range raw {
		values[k] = v
	}
	return DecodeValues(values)
}
