// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package yoke

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config carries container behavior settings. Load it from YAML via
// [ParseConfig] or construct it directly, and apply it with [WithConfig].
type Config struct {
	// EagerSingletons materializes every Singleton component when the
	// container freezes, so misconfiguration surfaces at startup rather than
	// on first use.
	EagerSingletons bool `yaml:"eagerSingletons"`

	// StrictValidation makes Validate treat warnings as failures.
	StrictValidation bool `yaml:"strictValidation"`
}

// ParseConfig reads container settings from YAML:
//
//	eagerSingletons: true
//	strictValidation: false
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config")
	}
	return cfg, nil
}
