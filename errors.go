// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otelkit

import "fmt"

// UnsupportedFileFormatError occurs when the document declares a file
// format this assembler does not understand, or none at all.
type UnsupportedFileFormatError struct {
	FileFormat string
}

// Error implements the [builtin.error] interface.
func (e UnsupportedFileFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q, supported formats are 0.4 and 1.0", e.FileFormat)
}
