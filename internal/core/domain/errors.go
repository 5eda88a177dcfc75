package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration Errors.

	// ErrConfigInvalid indicates the catalog configuration cannot be used.
	// A run must not start with an invalid configuration.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrMissingCredentials indicates the consumer key or secret is absent.
	ErrMissingCredentials = errors.New("missing catalog credentials")

	// Pipeline Errors.

	// ErrUnserializable indicates a record could not be serialised for digesting.
	// This is fatal: emitting the node would produce a corrupt digest.
	ErrUnserializable = errors.New("record is not serialisable")

	// ErrNodeSink indicates the node sink rejected a finalised node.
	ErrNodeSink = errors.New("node sink rejected node")

	// ErrPipelineRunning indicates a pipeline run is already in progress.
	ErrPipelineRunning = errors.New("pipeline already running")

	// Media Errors.

	// ErrDownloadFailed indicates a media file could not be downloaded.
	ErrDownloadFailed = errors.New("media download failed")
)
