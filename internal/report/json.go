package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/reposcope/reposcope/internal/findings"
)

func renderJSON(w io.Writer, result *findings.Result) error {
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshaling the result data: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("error writing result: %w", err)
	}
	return nil
}

// ParseResult decodes a JSON-rendered result back into its structured form.
func ParseResult(data []byte) (*findings.Result, error) {
	var result findings.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("error parsing result data: %w", err)
	}
	return &result, nil
}
