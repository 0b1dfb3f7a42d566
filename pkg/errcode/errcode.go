package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	CreateFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Input errors
	NoInputFilesError
	CollectFilesError
	ParseXMLError

	// Extraction errors
	ExtractContentError

	// Inference errors
	InvalidSchemaError
	ComparatorNameError

	// Output errors
	XSDWriteError
	ReportFormatError
	ReportWriteError
	ReportDBError
)
