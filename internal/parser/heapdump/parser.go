package heapdump

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	apperrors "github.com/heap-analysis/pkg/errors"
)

// maxLineSize bounds a single dump line. Large string objects can push
// lines well past bufio's default.
const maxLineSize = 16 * 1024 * 1024

// Parser decodes a JSON-lines heap dump into validated records.
type Parser struct{}

// NewParser creates a new heap dump parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the dump line by line. A line that is not valid JSON for
// the record schema aborts the run with a PARSE_ERROR carrying the line
// content; incomplete records (no address, array without length, hash
// without size) are dropped silently.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) ([]*ParsedRecord, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := make([]*ParsedRecord, 0, 1024)
	lineNum := 0

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeParseError,
				fmt.Sprintf("malformed dump line %d: %s", lineNum, string(line)), err)
		}

		parsed, err := record.Parse()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeParseError,
				fmt.Sprintf("invalid dump line %d: %s", lineNum, string(line)), err)
		}
		if parsed == nil {
			continue
		}

		records = append(records, parsed)
	}

	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParseError, "failed to read dump", err)
	}

	if len(records) == 0 {
		return nil, apperrors.ErrEmptyFile
	}

	return records, nil
}
