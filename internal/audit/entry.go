package audit

// TimestampFormat is the wire format for entry timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Entry is one line in the hash-chained JSONL sync log.
// All fields are scalars (no map[string]any) to guarantee deterministic
// json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp string `json:"ts"`
	Repo      string `json:"repo"`
	Path      string `json:"path"`
	Status    string `json:"status"`
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Files     int    `json:"files,omitempty"`
	RuleID    string `json:"rule_id,omitempty"`
	Message   string `json:"message,omitempty"`
	PrevHash  string `json:"prev_hash"`
}
