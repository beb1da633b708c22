// Package scene holds the scene graph the renderers draw and the loader
// that turns asset names into models.
package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/coinrunner/prefabs"
)

// ErrAssetLoad is returned when a model asset cannot be resolved.
var ErrAssetLoad = errors.New("scene: asset load failed")

// ModelLoader resolves a named asset into a model.
type ModelLoader interface {
	Load(ctx context.Context, name string) (*Model, error)
}

// LoadResult is delivered exactly once per LoadAsync call.
type LoadResult struct {
	Name  string
	Model *Model
	Err   error
}

// LoadAsync runs l on its own goroutine. The returned channel yields one
// result and is then closed.
func LoadAsync(ctx context.Context, l ModelLoader, name string) <-chan LoadResult {
	out := make(chan LoadResult, 1)
	go func() {
		defer close(out)
		if l == nil {
			out <- LoadResult{Name: name, Err: fmt.Errorf("%w: %s: no loader", ErrAssetLoad, name)}
			return
		}
		m, err := l.Load(ctx, name)
		switch {
		case err != nil && !errors.Is(err, ErrAssetLoad):
			err = fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, err)
		case err == nil && m == nil:
			err = fmt.Errorf("%w: %s: loader returned no model", ErrAssetLoad, name)
		}
		out <- LoadResult{Name: name, Model: m, Err: err}
	}()
	return out
}

// PrefabLoader reads models from prefabs/models.
type PrefabLoader struct{}

func NewPrefabLoader() *PrefabLoader {
	return &PrefabLoader{}
}

func (l *PrefabLoader) Load(ctx context.Context, name string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, err)
	}
	spec, err := prefabs.LoadModelSpec(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, err)
	}
	return ModelFromSpec(spec), nil
}

// LoaderFunc adapts a function to ModelLoader.
type LoaderFunc func(ctx context.Context, name string) (*Model, error)

func (f LoaderFunc) Load(ctx context.Context, name string) (*Model, error) {
	return f(ctx, name)
}
