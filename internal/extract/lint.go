package extract

import (
	"context"
	"fmt"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// Lint runs the document through the compose-spec reference loader. It is
// stricter than Extract and is only used on request; Extract never calls it.
func Lint(ctx context.Context, data []byte) error {
	var dict map[string]any
	if err := yaml.Unmarshal(data, &dict); err != nil || dict == nil {
		return &StructuralError{Err: ErrInvalidYAML}
	}

	_, err := loader.LoadWithContext(ctx, types.ConfigDetails{
		WorkingDir: ".",
		ConfigFiles: []types.ConfigFile{
			{
				Filename: "compose.yml",
				Content:  data,
				Config:   dict,
			},
		},
		Environment: types.Mapping{},
	}, func(opts *loader.Options) {
		opts.SetProjectName("k8sify-lint", false)
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotCompliant, err)
	}
	return nil
}
