// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

const (
	hclExt = ".hcl"
	// environVar is the HCL variable holding the process environment.
	environVar = "environ"
)

var (
	// ErrDecodeProfile is returned when a profile document cannot be parsed.
	ErrDecodeProfile = errors.New("failed to decode profile")
	// ErrInvalidProfile is returned when a parsed profile fails validation.
	ErrInvalidProfile = errors.New("invalid profile")
)

// Decode parses a profile document. Files ending in .hcl are read as HCL, anything
// else as YAML. Unknown keys are rejected and absent keys take their default values.
func Decode(name string, data []byte) (*Profile, error) {
	p := &Profile{}

	if len(bytes.TrimSpace(data)) > 0 {
		var err error
		if isHCL(name) {
			err = decodeHCL(name, data, p)
		} else {
			err = yaml.UnmarshalWithOptions(data, p, yaml.DisallowUnknownField())
		}

		if err != nil {
			return nil, errors.Join(ErrDecodeProfile, err)
		}
	}

	p.applyDefaults()

	if err := p.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidProfile, err)
	}

	return p, nil
}

func isHCL(name string) bool {
	return strings.EqualFold(filepath.Ext(name), hclExt)
}

func decodeHCL(name string, data []byte, p *Profile) error {
	// hclsimple picks the syntax from the file name.
	if !strings.HasSuffix(name, hclExt) {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + hclExt
	}

	err := hclsimple.Decode(name, data, hclEvalContext(), p)

	var diags hcl.Diagnostics
	if errors.As(err, &diags) {
		return multierror.Append(nil, diags.Errs()...)
	}

	return err
}

// hclEvalContext lets HCL profiles read the environment of this process,
// for example working_dir = environ.HOME.
func hclEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !utf8.ValidString(v) {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			environVar: cty.ObjectVal(vars),
		},
	}
}
