package modules

import (
	"github.com/pkg/errors"

	"github.com/ajkachnic/tern/core"
)

var loaders = map[string]func(*core.Context) error{
	"math": loadMath,
}

// Initialize registers every bundled module on ctx.
func Initialize(ctx *core.Context) error {
	for name, load := range loaders {
		if err := load(ctx); err != nil {
			return errors.Wrapf(err, "load module %s", name)
		}
	}
	return nil
}
