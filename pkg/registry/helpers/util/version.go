package util

import (
	"context"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
)

// ParseAndValidateOAS parses OpenAPI data and validates it.
func ParseAndValidateOAS(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, err
	}
	if err := loader.ResolveRefsIn(spec, nil); err != nil {
		return nil, err
	}
	if err := spec.Validate(context.Background()); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadOASVersion reads the published API version from the OAS document.
func LoadOASVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read OAS file: %w", err)
	}

	spec, err := ParseAndValidateOAS(data)
	if err != nil {
		return "", fmt.Errorf("could not parse OAS: %w", err)
	}

	if spec.Info == nil || spec.Info.Version == "" {
		return "", fmt.Errorf("version missing from OAS")
	}

	return spec.Info.Version, nil
}
