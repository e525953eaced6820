package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/pairing"
	"github.com/cory-johannsen/tilegrow/internal/random"
	"github.com/cory-johannsen/tilegrow/internal/scripting"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// Compile-time check that scripts plug into the pair finder.
var _ pairing.AdmissionPredicate = (*scripting.AdmissionScript)(nil)

func newLogger(t testing.TB) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func sampleTemplate(id string) *tile.Template {
	return &tile.Template{
		ID:            id,
		AllowRotation: true,
		Doorways: []*tile.Doorway{
			{ID: "north", Socket: "wide", Forward: geom.Forward, Up: geom.Up},
			{ID: "south", Socket: tile.DefaultSocket, Forward: geom.Back, Up: geom.Up},
		},
	}
}

func TestAdmissionScript_VetoAndReweight(t *testing.T) {
	logger, _ := newLogger(t)
	dir := writeTempLua(t, "rules.lua", `
		function admit(prev, next, weight)
			if next.id == "boss_room" and prev == nil then
				return false
			end
			if next.sockets[1] == "wide" then
				return true, weight * 2
			end
			return true
		end
	`)
	s, err := scripting.LoadAdmissionScripts(dir, 0, logger)
	require.NoError(t, err)
	defer s.Close()
	require.True(t, s.HasHook())

	w := 3.0
	assert.False(t, s.Admit(nil, "", sampleTemplate("boss_room"), "boss_room", &w))

	w = 3.0
	assert.True(t, s.Admit(nil, "", sampleTemplate("hall"), "hall", &w))
	assert.Equal(t, 6.0, w)

	plain := sampleTemplate("plain")
	plain.Doorways[0].Socket = tile.DefaultSocket
	w = 3.0
	assert.True(t, s.Admit(nil, "", plain, "plain", &w))
	assert.Equal(t, 3.0, w, "returning only ok keeps the weight")
}

func TestAdmissionScript_SeesPreviousTile(t *testing.T) {
	logger, _ := newLogger(t)
	s, err := scripting.LoadAdmissionString(`
		function admit(prev, next, weight)
			tilegrow.log("prev " .. prev.template .. " ref " .. prev.ref)
			return prev.used == 1 and prev.unused == 1, weight
		end
	`, 0, logger)
	require.NoError(t, err)
	defer s.Close()

	prev := tile.Place(sampleTemplate("corridor"), 0, geom.Up)
	w := 1.0
	assert.False(t, s.Admit(prev, "prefab:corridor", sampleTemplate("next"), "next", &w))

	south, _ := prev.DoorwayByID("south")
	require.NoError(t, prev.Connect(south))
	assert.True(t, s.Admit(prev, "prefab:corridor", sampleTemplate("next"), "next", &w))
}

func TestAdmissionScript_NoHookAdmitsEverything(t *testing.T) {
	logger, _ := newLogger(t)
	s, err := scripting.LoadAdmissionString(`-- no functions`, 0, logger)
	require.NoError(t, err)
	defer s.Close()
	assert.False(t, s.HasHook())
	w := 2.0
	assert.True(t, s.Admit(nil, "", sampleTemplate("x"), "x", &w))
	assert.Equal(t, 2.0, w)
}

func TestAdmissionScript_RuntimeErrorLoggedAndAdmitted(t *testing.T) {
	logger, logs := newLogger(t)
	s, err := scripting.LoadAdmissionString(`
		function admit(prev, next, weight)
			error("boom")
		end
	`, 0, logger)
	require.NoError(t, err)
	defer s.Close()

	w := 2.0
	assert.True(t, s.Admit(nil, "", sampleTemplate("x"), "x", &w))
	assert.Equal(t, 2.0, w)
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestAdmissionScript_BudgetResetsPerCall(t *testing.T) {
	logger, logs := newLogger(t)
	s, err := scripting.LoadAdmissionString(`
		function admit(prev, next, weight)
			local n = 0
			for i = 1, 200 do n = n + i end
			return true, n
		end
	`, 5000, logger)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 50; i++ {
		w := 0.0
		require.True(t, s.Admit(nil, "", sampleTemplate("x"), "x", &w))
		require.Equal(t, 20100.0, w, "call %d", i)
	}
	assert.Equal(t, 0, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestAdmissionScript_InfiniteLoopIsCut(t *testing.T) {
	logger, logs := newLogger(t)
	s, err := scripting.LoadAdmissionString(`
		function admit(prev, next, weight)
			while true do end
		end
	`, 100, logger)
	require.NoError(t, err)
	defer s.Close()

	w := 1.0
	assert.True(t, s.Admit(nil, "", sampleTemplate("x"), "x", &w))
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestLoadAdmissionScripts_Errors(t *testing.T) {
	logger, _ := newLogger(t)
	_, err := scripting.LoadAdmissionScripts(filepath.Join(t.TempDir(), "missing"), 0, logger)
	assert.Error(t, err)

	dir := writeTempLua(t, "bad.lua", `function admit(`)
	_, err = scripting.LoadAdmissionScripts(dir, 0, logger)
	assert.Error(t, err)
}

func TestAdmissionScript_DrivesFinder(t *testing.T) {
	logger, _ := newLogger(t)
	s, err := scripting.LoadAdmissionString(`
		function admit(prev, next, weight)
			return next.id ~= "banned"
		end
	`, 0, logger)
	require.NoError(t, err)
	defer s.Close()

	keep, banned := sampleTemplate("keep"), sampleTemplate("banned")
	lib, err := tile.NewLibrary([]*tile.Template{keep, banned}, nil)
	require.NoError(t, err)
	f := &pairing.Finder{
		Random: random.NewSeededSource(1),
		Candidates: []tile.Candidate{
			{Ref: "keep", TileSet: "s", Weight: tile.Chance{MainPathWeight: 1}.Weight},
			{Ref: "banned", TileSet: "s", Weight: tile.Chance{MainPathWeight: 1}.Weight},
		},
		OnMainPath: true,
		Admission:  s,
		Resolver:   lib,
	}
	q, err := f.DoorwayPairs(pairing.NoLimit)
	require.NoError(t, err)
	require.Equal(t, 2, q.Len())
	for _, p := range q.Remaining() {
		assert.Equal(t, "keep", p.NextTemplate().ID)
	}
}
