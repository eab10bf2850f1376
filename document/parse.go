// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"github.com/treelinelabs/otelkit/config"
)

// Parse reads the given config sources and decodes them into a
// [Document]. Subsequent sources override previous sources, allowing
// e.g. a baseline document to be overlaid with overrides.
//
// Parse performs no semantic validation. In particular the file_format
// field is checked during assembly, not here.
func Parse(srcs ...config.Source) (*Document, error) {
	m, err := config.Read(srcs...)
	if err != nil {
		return nil, err
	}

	var doc Document
	err = m.Unmarshal(
		&doc,
		config.WithDecodeHook(componentHookFunc()),
		config.WithDecodeHook(millisecondHookFunc()),
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
