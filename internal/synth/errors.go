package synth

import (
	"errors"
	"fmt"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// ErrNameCollision marks a service whose name reduces to the same DNS label
// as another service's name.
var ErrNameCollision = errors.New("service name collision")

// ErrDuplicateFile is returned by Write when two manifests share a file name.
var ErrDuplicateFile = errors.New("duplicate manifest file")

// RenderError reports a manifest that could not be produced. Other
// manifests of the same run are unaffected.
type RenderError struct {
	Kind    model.ManifestKind
	Name    string
	Service string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IOError reports a manifest that could not be written.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
