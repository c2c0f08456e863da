package upload

import "fmt"

// Step names one stage of handling a creation event.
type Step string

const (
	StepUpload        Step = "upload"
	StepSidecarWrite  Step = "sidecar_write"
	StepSidecarUpload Step = "sidecar_upload"
)

// Result is the outcome of one attempted step.
type Result struct {
	Step Step
	Key  string
	Err  error // *StepError, nil on success
}

func (r Result) OK() bool {
	return r.Err == nil
}

type StepError struct {
	Step Step
	Key  string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Key, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
