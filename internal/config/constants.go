package config

import "strings"

// Version of the compiler, reported by samplc version.
const Version = "0.3.0"

const SourceFileExt = ".sampl"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".sampl", ".sam"}

// HostFileExt is the extension of transpiled output.
const HostFileExt = ".kt"

// ConfigFileName is looked up from the source directory upwards.
const ConfigFileName = "sampl.yaml"

// Entry point
const (
	MainFuncName = "main"
	HostMainArgs = "args: Array<String>"
)

// Prelude function names
const (
	PrintlnFuncName       = "println"
	IntToStringFuncName   = "intToString"
	FloatToStringFuncName = "floatToString"
	CharToStringFuncName  = "charToString"
)

// Names reserved in generated host code
const (
	ExceptionClassName    = "PLException"
	ExceptionMessageField = "m"
	CaughtExceptionName   = "_e"
	PlaceholderPrefix     = "_tempV"
	MatchSubjectPrefix    = "_match"
	PayloadFieldName      = "data"
	BottomTypeName        = "Nothing"
)

// ReservedPrefix starts every local name the transpiler generates. User
// code may not declare names with it.
const ReservedPrefix = "_"

// IsReserved reports whether name belongs to generated code.
func IsReserved(name string) bool {
	return strings.HasPrefix(name, ReservedPrefix)
}

func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
