// Package execresult defines the per-unit execution outcome shared by the
// cache, planner and executor: execution_result ∈ {Success, Failed(code),
// Cached, Unreached}.
package execresult

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the outcome category of a single translation unit's command.
type Status int

const (
	// Unreached means this unit's command did not run to completion: the
	// phase aborted after an earlier unit failed, the run was cancelled, or
	// (when returned by the cache lookup) the unit has no previous record.
	Unreached Status = iota
	Success
	Cached
	Failed
)

func (s Status) String() string {
	switch s {
	case Unreached:
		return "Unreached"
	case Success:
		return "Success"
	case Cached:
		return "Cached"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result pairs a Status with the subprocess exit code, meaningful only when
// Status is Failed.
type Result struct {
	Status Status
	Code   int
}

func (r Result) String() string {
	if r.Status == Failed {
		return fmt.Sprintf("Failed(%d)", r.Code)
	}
	return r.Status.String()
}

// Successful reports whether a skip policy may treat this as "already
// done": both Success and Cached count.
func (r Result) Successful() bool {
	return r.Status == Success || r.Status == Cached
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.HasPrefix(s, "Failed(") && strings.HasSuffix(s, ")") {
		code, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(s, "Failed("), ")"))
		if err != nil {
			return fmt.Errorf("execresult: malformed %q: %w", s, err)
		}
		*r = Result{Status: Failed, Code: code}
		return nil
	}
	switch s {
	case "Unreached":
		*r = Result{Status: Unreached}
	case "Success":
		*r = Result{Status: Success}
	case "Cached":
		*r = Result{Status: Cached}
	default:
		return fmt.Errorf("execresult: unknown status %q", s)
	}
	return nil
}
