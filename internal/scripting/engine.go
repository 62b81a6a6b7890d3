package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/framehost/engine/internal/dispatch"
)

// Engine wraps a single gopher-lua VM whose global functions can be attached
// to the dispatcher as phase listeners. Single-goroutine access only (frame
// loop).
type Engine struct {
	vm        *lua.LState
	log       *zap.Logger
	disp      *dispatch.Dispatcher
	listeners map[string]*ScriptListener
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory is skipped, not an error.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:        vm,
		log:       log,
		listeners: make(map[string]*ScriptListener),
	}

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Bind wires the dispatcher into the VM and exposes register(phase, fn) and
// unregister(phase, fn) to scripts. A script may call either from inside one
// of its own callbacks; the deferred-add / immediate-remove policy applies
// across the boundary exactly as it does for Go listeners.
func (e *Engine) Bind(d *dispatch.Dispatcher) {
	e.disp = d
	e.vm.SetGlobal("register", e.vm.NewFunction(e.luaRegister))
	e.vm.SetGlobal("unregister", e.vm.NewFunction(e.luaUnregister))
}

// Listener returns the phase listener backed by the named global Lua
// function, creating it on first use. Calls for the same name return the same
// handle, so script registrations keep identity across register/unregister.
func (e *Engine) Listener(fn string) *ScriptListener {
	if l, ok := e.listeners[fn]; ok {
		return l
	}
	l := &ScriptListener{eng: e, fn: fn}
	e.listeners[fn] = l
	return l
}

func (e *Engine) luaRegister(L *lua.LState) int {
	phaseName := L.CheckString(1)
	fn := L.CheckString(2)
	phase, err := dispatch.ParsePhase(phaseName)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if e.disp == nil {
		e.log.Error("lua register called before Bind", zap.String("fn", fn))
		return 0
	}
	e.disp.Register(phase, e.Listener(fn))
	return 0
}

func (e *Engine) luaUnregister(L *lua.LState) int {
	phaseName := L.CheckString(1)
	fn := L.CheckString(2)
	phase, err := dispatch.ParsePhase(phaseName)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if e.disp == nil {
		e.log.Error("lua unregister called before Bind", zap.String("fn", fn))
		return 0
	}
	e.disp.Unregister(phase, e.Listener(fn))
	return 0
}

// call invokes the named global with a context table. Script faults are
// logged and swallowed: one broken script must not abort the host's advance.
func (e *Engine) call(fn string, phase dispatch.Phase, invocation int) {
	g := e.vm.GetGlobal(fn)
	if g == lua.LNil {
		e.log.Error("lua listener function not found", zap.String("fn", fn))
		return
	}

	ctx := e.vm.NewTable()
	ctx.RawSetString("phase", lua.LString(phase.String()))
	ctx.RawSetString("invocation", lua.LNumber(invocation))

	if err := e.vm.CallByParam(lua.P{
		Fn:      g,
		NRet:    0,
		Protect: true,
	}, ctx); err != nil {
		e.log.Error("lua listener error",
			zap.String("fn", fn), zap.Error(err))
	}
}

// GlobalInt reads a numeric Lua global, for host-side inspection.
func (e *Engine) GlobalInt(name string) int {
	return int(lua.LVAsNumber(e.vm.GetGlobal(name)))
}

func (e *Engine) Close() {
	e.vm.Close()
}

// ScriptListener adapts a named Lua function to the three phase capability
// interfaces. Which phases it actually runs in is decided by registration,
// same as any Go listener.
type ScriptListener struct {
	eng         *Engine
	fn          string
	invocations int
}

func (l *ScriptListener) OnUpdate()      { l.call(dispatch.Update) }
func (l *ScriptListener) OnPhysicsStep() { l.call(dispatch.Physics) }
func (l *ScriptListener) OnLateUpdate()  { l.call(dispatch.LateUpdate) }

func (l *ScriptListener) call(phase dispatch.Phase) {
	l.invocations++
	l.eng.call(l.fn, phase, l.invocations)
}
