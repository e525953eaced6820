package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// AdmitHook is the global Lua function an admission script defines:
//
//	function admit(prev, next, weight) return ok, new_weight end
//
// prev is nil for the first tile. Returning only ok keeps the weight.
const AdmitHook = "admit"

// AdmissionScript is a pairing.AdmissionPredicate backed by Lua scripts.
//
// A script that does not define admit admits everything. Lua runtime errors,
// including an exhausted instruction budget, are logged at Warn level and
// admit the candidate with its weight unchanged.
//
// Not safe for concurrent use; the pair finder calls it from one goroutine.
type AdmissionScript struct {
	L         *lua.LState
	cancel    func()
	instLimit int
	logger    *zap.Logger
}

// LoadAdmissionScripts creates a sandboxed VM, registers the tilegrow module,
// and executes every *.lua file in dir in lexicographic order.
//
// Precondition: dir must be a readable directory; logger must be non-nil.
// Postcondition: Returns a ready AdmissionScript or a load error. The caller
// must Close it.
func LoadAdmissionScripts(dir string, instLimit int, logger *zap.Logger) (*AdmissionScript, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	s := newAdmissionScript(instLimit, logger)
	for _, path := range luaFiles {
		if err := s.L.DoFile(path); err != nil {
			s.Close()
			return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	logger.Debug("admission scripts loaded",
		zap.String("dir", dir),
		zap.Int("files", len(luaFiles)),
		zap.Bool("has_admit", s.HasHook()),
	)
	return s, nil
}

// LoadAdmissionString builds an AdmissionScript from Lua source.
func LoadAdmissionString(src string, instLimit int, logger *zap.Logger) (*AdmissionScript, error) {
	s := newAdmissionScript(instLimit, logger)
	if err := s.L.DoString(src); err != nil {
		s.Close()
		return nil, fmt.Errorf("scripting: loading admission source: %w", err)
	}
	return s, nil
}

func newAdmissionScript(instLimit int, logger *zap.Logger) *AdmissionScript {
	L, cancel := NewSandboxedState(instLimit)
	s := &AdmissionScript{L: L, cancel: cancel, instLimit: instLimit, logger: logger}
	s.RegisterModules()
	return s
}

// HasHook reports whether the loaded scripts define admit.
func (s *AdmissionScript) HasHook() bool {
	return s.L.GetGlobal(AdmitHook).Type() == lua.LTFunction
}

// Admit implements pairing.AdmissionPredicate by calling the Lua admit hook.
func (s *AdmissionScript) Admit(prev *tile.PlacedTile, prevRef string, next *tile.Template, nextRef string, weight *float64) bool {
	fn := s.L.GetGlobal(AdmitHook)
	if fn.Type() != lua.LTFunction {
		return true
	}

	// Each call gets a fresh instruction budget.
	s.cancel()
	s.cancel = arm(s.L, normalizeLimit(s.instLimit))

	var prevArg lua.LValue = lua.LNil
	if prev != nil {
		prevArg = s.placedTable(prev, prevRef)
	}
	err := s.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, prevArg, s.templateTable(next, nextRef), lua.LNumber(*weight))
	if err != nil {
		s.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", AdmitHook),
			zap.String("template", nextRef),
			zap.Error(err),
		)
		return true
	}

	okRet, weightRet := s.L.Get(-2), s.L.Get(-1)
	s.L.Pop(2)
	if w, isNum := weightRet.(lua.LNumber); isNum {
		*weight = float64(w)
	}
	return lua.LVAsBool(okRet)
}

// Close releases the VM.
func (s *AdmissionScript) Close() {
	s.cancel()
	s.L.Close()
}

func (s *AdmissionScript) templateTable(t *tile.Template, ref string) *lua.LTable {
	tbl := s.L.NewTable()
	s.L.SetField(tbl, "id", lua.LString(t.ID))
	s.L.SetField(tbl, "ref", lua.LString(ref))
	s.L.SetField(tbl, "allow_rotation", lua.LBool(t.AllowRotation))
	s.L.SetField(tbl, "doorways", lua.LNumber(len(t.Doorways)))
	sockets := s.L.NewTable()
	for _, d := range t.Doorways {
		sockets.Append(lua.LString(d.Socket))
	}
	s.L.SetField(tbl, "sockets", sockets)
	if t.Entrance != nil {
		s.L.SetField(tbl, "entrance", lua.LString(t.Entrance.ID))
	}
	return tbl
}

func (s *AdmissionScript) placedTable(p *tile.PlacedTile, ref string) *lua.LTable {
	tbl := s.L.NewTable()
	s.L.SetField(tbl, "id", lua.LString(p.ID.String()))
	s.L.SetField(tbl, "ref", lua.LString(ref))
	if p.Template != nil {
		s.L.SetField(tbl, "template", lua.LString(p.Template.ID))
	}
	s.L.SetField(tbl, "used", lua.LNumber(p.UsedCount()))
	s.L.SetField(tbl, "unused", lua.LNumber(len(p.Unused())))
	return tbl
}
