package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
)

// Record is one document's extracted answers: field name -> value. Rating
// fields hold the selected number as a string, everything else the found text.
type Record map[string]string

// Extractor is the interface the pipeline depends on.
type Extractor interface {
	// Extract sends one PDF and the field specification to the model and
	// returns the normalized record.
	Extract(ctx context.Context, pdf []byte, list *fields.List) (Record, error)
}

// Stage identifies where in a document's flow a failure happened.
type Stage string

const (
	StagePreflight Stage = "preflight" // PDF could not be opened or page-counted
	StageRead      Stage = "read"      // document bytes could not be read
	StageModel     Stage = "model"     // model call failed
	StageDecode    Stage = "decode"    // response was not a JSON object
	StageArtifact  Stage = "artifact"  // record could not be cached
)

// Error is a per-document failure tagged with its stage. The pipeline logs it
// with the document's name and moves on; nothing in a batch is retried.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError tags err with the failing stage.
func NewError(stage Stage, err error) *Error {
	return &Error{Stage: stage, Err: err}
}

// StageOf reports the failing stage carried by err, or "unknown".
func StageOf(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return "unknown"
}
