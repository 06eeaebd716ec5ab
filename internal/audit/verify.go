package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// VerifyResult holds the outcome of a hash chain verification.
type VerifyResult struct {
	Valid     bool   `json:"valid"`
	Lines     int    `json:"lines"`
	Truncated bool   `json:"truncated,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// Verify reads a JSONL sync log and validates the hash chain. A final
// partial line with no newline terminator is an interrupted write, not
// tampering: the chain before it is judged on its own and the result is
// flagged Truncated. Any other break reports the first bad line.
func Verify(path string) VerifyResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return VerifyResult{Error: fmt.Sprintf("open: %v", err)}
	}

	res := VerifyResult{}
	prev := GenesisHash

	for len(data) > 0 {
		nl := bytes.IndexByte(data, '\n')
		if nl < 0 {
			res.Truncated = true
			break
		}
		line := data[:nl]
		data = data[nl+1:]
		res.Lines++

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			res.Error = fmt.Sprintf("parse error: %v", err)
			res.ErrorLine = res.Lines
			return res
		}
		if entry.PrevHash != prev {
			if res.Lines == 1 {
				res.Error = fmt.Sprintf("first entry prev_hash is %q, expected genesis hash", entry.PrevHash)
			} else {
				res.Error = fmt.Sprintf("hash mismatch: expected %s, got %s", prev, entry.PrevHash)
			}
			res.ErrorLine = res.Lines
			return res
		}
		prev = HashLine(line)
	}

	res.Valid = true
	return res
}
