package services

import "errors"

// Service errors
var (
	// Session errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoAnalysisResults = errors.New("no analysis results found, run an analysis first")

	// Input errors
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrEmptyTable        = errors.New("the file contains no data to process")
	ErrNoTextColumns     = errors.New("none of the expected text columns were found")
	ErrTextColumnMissing = errors.New("text column not found")

	// Analysis errors
	ErrNoModelsSelected = errors.New("at least one model must be selected")
	ErrUnknownTechnique = errors.New("unknown technique name")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
