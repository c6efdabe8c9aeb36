package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrReportNotFound      = errors.New("report not found")
	ErrReportNotParsed     = errors.New("report has not been parsed yet")
	ErrReportParseActive   = errors.New("report is already being parsed")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnsupportedExport   = errors.New("unsupported export format")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrNoInputText         = errors.New("no input text to parse")
	ErrRecoveryExhausted   = errors.New("no data could be extracted")
)
