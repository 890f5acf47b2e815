package common

import (
	"encoding/json"
	"io"
	"os"
)

// CIResult is the single JSON document a tool prints in --ci mode.
type CIResult struct {
	Tool     string   `json:"tool"`
	OK       bool     `json:"ok"`
	ExitCode int      `json:"exitCode"`
	Details  []string `json:"details,omitempty"`
	Error    string   `json:"error,omitempty"`
}

var (
	ciOut io.Writer = os.Stdout
	exit            = os.Exit
)

func writeCIResult(w io.Writer, result CIResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Finish reports the outcome of a tool command. With ci set it prints a
// CIResult; a non-nil err exits the process with code.
func Finish(ci bool, tool string, details []string, err error, code int) {
	result := CIResult{Tool: tool, OK: err == nil, Details: details}
	if err != nil {
		result.Error = err.Error()
		result.ExitCode = code
	}
	if ci {
		_ = writeCIResult(ciOut, result)
	}
	if err != nil {
		exit(code)
	}
}
