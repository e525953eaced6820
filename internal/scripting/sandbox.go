// Package scripting runs content-authored Lua admission scripts, which veto
// tile candidates or reweight them during doorway pair selection, inside a
// sandboxed GopherLua VM.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget per script call when none is
// configured.
const DefaultInstructionLimit = 100_000

// budget is a context that cancels itself once Done has been polled ops
// times. The VM polls Done once per opcode, so this bounds every call by
// instruction count rather than wall time.
type budget struct {
	context.Context
	stop context.CancelFunc
	left atomic.Int64
}

func newBudget(ops int) *budget {
	ctx, stop := context.WithCancel(context.Background())
	b := &budget{Context: ctx, stop: stop}
	b.left.Store(int64(ops))
	return b
}

// Done spends one opcode.
func (b *budget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.stop()
	}
	return b.Context.Done()
}

// arm installs a fresh budget of ops opcodes on L and returns its cancel.
func arm(L *lua.LState, ops int) context.CancelFunc {
	b := newBudget(ops)
	L.SetContext(b)
	return b.stop
}

// blockedGlobals can reach the filesystem or the loader.
var blockedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// NewSandboxedState creates an LState that has only the base, table, string,
// and math libraries, with blockedGlobals removed. It is armed with an
// instLimit opcode budget.
//
// Precondition: instLimit >= 0; 0 selects DefaultInstructionLimit.
// Postcondition: the caller owns L and must call cancel and L.Close.
func NewSandboxedState(instLimit int) (L *lua.LState, cancel context.CancelFunc) {
	L = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L, arm(L, normalizeLimit(instLimit))
}

func normalizeLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}
