package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling at the
// transport boundary without switch statements over concrete types.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrDocumentProcessing  = errors.New("document processing failed")
	ErrPlanGeneration      = errors.New("plan generation failed")
	ErrInvalidWizardState  = errors.New("invalid wizard state")
	ErrCanvasCreation      = errors.New("canvas creation failed")
	ErrRefinementExhausted = errors.New("refinement limit reached")
)

// DocumentProcessingError indicates a single source failed extraction.
// Non-fatal to a batch unless every source fails; the caller decides
// whether to skip the source or abort the whole generation.
type DocumentProcessingError struct {
	Source    string // filename or URL of the failed source
	Processor string // processor that attempted the extraction
	Err       error
}

func (e *DocumentProcessingError) Error() string {
	return fmt.Sprintf("processing %q with %s: %v", e.Source, e.Processor, e.Err)
}

func (e *DocumentProcessingError) StatusCode() int { return http.StatusUnprocessableEntity }

func (e *DocumentProcessingError) Unwrap() error { return e.Err }

func (e *DocumentProcessingError) Is(target error) bool { return target == ErrDocumentProcessing }

// PlanGenerationError indicates AI generation or refinement failed, or
// returned an unparseable/incomplete result. The plan the caller held is
// left unchanged (refine) or absent (initial generate).
type PlanGenerationError struct {
	Provider string
	Model    string
	Reason   string
	Err      error
}

func (e *PlanGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plan generation (%s/%s): %s: %v", e.Provider, e.Model, e.Reason, e.Err)
	}
	return fmt.Sprintf("plan generation (%s/%s): %s", e.Provider, e.Model, e.Reason)
}

func (e *PlanGenerationError) StatusCode() int { return http.StatusBadGateway }

func (e *PlanGenerationError) Unwrap() error { return e.Err }

func (e *PlanGenerationError) Is(target error) bool { return target == ErrPlanGeneration }

// InvalidWizardStateError indicates an illegal step transition or missing
// prerequisite session data. The session is never mutated when this is
// returned.
type InvalidWizardStateError struct {
	Current string
	Target  string
	Reason  string
}

func (e *InvalidWizardStateError) Error() string {
	return fmt.Sprintf("cannot move from step %s to %s: %s", e.Current, e.Target, e.Reason)
}

func (e *InvalidWizardStateError) StatusCode() int { return http.StatusConflict }

func (e *InvalidWizardStateError) Is(target error) bool { return target == ErrInvalidWizardState }

// Violation describes one structured validation failure on a page about to
// be persisted.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CanvasCreationError indicates the page-creation sequence failed: missing
// template, duplication failure, or page validation. No partial page is
// left persisted when this is returned.
type CanvasCreationError struct {
	PageTitle  string
	Violations []Violation
	Err        error
}

func (e *CanvasCreationError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("creating page %q: %d validation violation(s)", e.PageTitle, len(e.Violations))
	}
	if e.Err != nil {
		return fmt.Sprintf("creating page %q: %v", e.PageTitle, e.Err)
	}
	return fmt.Sprintf("creating page %q failed", e.PageTitle)
}

func (e *CanvasCreationError) StatusCode() int {
	if len(e.Violations) > 0 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusConflict
}

func (e *CanvasCreationError) Unwrap() error { return e.Err }

func (e *CanvasCreationError) Is(target error) bool { return target == ErrCanvasCreation }

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError indicates invalid caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UnauthorizedError indicates authentication failure.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
