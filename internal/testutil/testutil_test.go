package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/treeconf/internal/dat"
)

func TestSequentialRunIDs(t *testing.T) {
	var g SequentialRunIDs

	assert.Equal(t, "00000000-0000-0000-0000-000000000001", g.NewRunID())
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", g.NewRunID())

	g.Reset()
	assert.Equal(t, RunID(1), g.NewRunID())
}

func TestSequentialRunIDs_Concurrent(t *testing.T) {
	var (
		g    SequentialRunIDs
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.NewRunID()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50, "ids must be unique")
}

func TestFixedClock(t *testing.T) {
	assert.Equal(t, FixedTime, FixedClock())
	assert.Equal(t, FixedClock(), FixedClock())
}

func TestWriteDat_ParsesBack(t *testing.T) {
	dir := Corpus(t)
	path := WriteDat(t, dir, "a.dat",
		Case{Data: "<p>", Document: []string{"| <html>"}},
		Case{Data: "x", Fragment: "td", Script: "off", Document: []string{`| "x"`}},
	)

	cases, err := dat.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "<p>\n", cases[0].Data)
	assert.Equal(t, "| <html>\n", *cases[0].Document)

	require.NotNil(t, cases[1].DocumentFragment)
	assert.Equal(t, "td\n", *cases[1].DocumentFragment)
	assert.NotNil(t, cases[1].ScriptOff)
	assert.Nil(t, cases[1].ScriptOn)
	assert.Equal(t, "| \"x\"\n", *cases[1].Document)
}
