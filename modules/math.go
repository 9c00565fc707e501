package modules

import (
	"github.com/ajkachnic/tern/core"
)

// Functions in a module see whatever is bound when they are called, so
// clamp needs min and max from the same module.
const mathSource = `
fn max(a: int, b: int) -> int = if a > b then a else b
fn min(a: int, b: int) -> int = if a < b then a else b
fn abs(n: int) -> int = if n < 0 then 0 - n else n
fn square(n: int) -> int = n * n
fn clamp(n: int, lo: int, hi: int) -> int = max(lo, min(n, hi))
fn sign(n: int) -> int = match n > 0 {
	true -> 1,
	false -> if n < 0 then 0 - 1 else 0,
}
`

func loadMath(ctx *core.Context) error {
	// parse eagerly so a broken module fails at registration, not on import
	if _, err := core.ParseSource(mathSource); err != nil {
		return err
	}

	ctx.LoadModule("math", mathSource)
	return nil
}
