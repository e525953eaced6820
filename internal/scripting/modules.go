package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the tilegrow.* Lua table into the script VM.
//
// Postcondition: tilegrow.log(msg) is defined and logs msg at debug level.
func (s *AdmissionScript) RegisterModules() {
	mod := s.L.NewTable()
	s.L.SetField(mod, "log", s.L.NewFunction(func(L *lua.LState) int {
		s.logger.Debug("admission script", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	s.L.SetGlobal("tilegrow", mod)
}
