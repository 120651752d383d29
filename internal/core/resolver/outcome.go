package resolver

import "github.com/agenthands/saber/internal/core/model"

// status records why a remote lookup produced what it did. The public methods
// collapse everything but statusOK into an empty list or nil; the status is
// kept for logs and tests.
type status int

const (
	statusOK status = iota
	statusEmpty
	statusTooShort
	statusUnavailable
	statusMalformed
	statusNotFound
)

func (s status) String() string {
	switch s {
	case statusOK:
		return "ok"
	case statusEmpty:
		return "empty"
	case statusTooShort:
		return "too_short"
	case statusUnavailable:
		return "unavailable"
	case statusMalformed:
		return "malformed"
	case statusNotFound:
		return "not_found"
	}
	return "unknown"
}

// degraded reports a failure of the remote source, as opposed to an answer.
func (s status) degraded() bool {
	return s == statusUnavailable || s == statusMalformed
}

type outcome struct {
	status     status
	candidates []model.Candidate
	err        error
}

func failed(s status, err error) outcome {
	return outcome{status: s, candidates: []model.Candidate{}, err: err}
}
