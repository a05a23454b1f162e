package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbusacker/robot-gnc/internal/engine"
	"github.com/wbusacker/robot-gnc/internal/store"
)

const stdinInput = `{
	"simulation_meta": {"simulation_id": "stdin", "time_step": 0.1, "run_time": 5},
	"target_distance": 10,
	"motor": {"max_rpm": 120},
	"controller": {"kp": 0.5, "ki": 1}
}`

func runCLI(t *testing.T, stdin string, args ...string) (engine.SimulationLog, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"-quiet"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	if err != nil {
		return engine.SimulationLog{}, err
	}
	var log engine.SimulationLog
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &log))
	return log, nil
}

func TestRunFromStdinWithSeed(t *testing.T) {
	log, err := runCLI(t, stdinInput, "-seed", "99")
	require.NoError(t, err)
	assert.Equal(t, "stdin", log.Meta.SimulationID)
	require.NotNil(t, log.Meta.Seed)
	assert.Equal(t, uint64(99), *log.Meta.Seed)
	assert.Equal(t, engine.OutcomeTimedOut, log.Outcome)

	again, err := runCLI(t, stdinInput, "-seed", "99")
	require.NoError(t, err)
	assert.Equal(t, log.Output, again.Output)
}

func TestRunFromFileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation_meta: {simulation_id: file, time_step: 0.1, run_time: 3}
target_distance: 2
motor: {max_rpm: 240}
controller: {kp: 1}
`), 0o644))

	log, err := runCLI(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "file", log.Meta.SimulationID)

	log, err = runCLI(t, "", "-config", path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, log.Final().Target)
}

func TestRunPresetWithArtefacts(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "trace.png")
	html := filepath.Join(dir, "trace.html")
	db := filepath.Join(dir, "runs.db")

	log, err := runCLI(t, "", "-preset", "open-loop", "-seed", "3", "-png", png, "-html", html, "-db", db)
	require.NoError(t, err)
	assert.Equal(t, engine.OutcomeSteadyState, log.Outcome)

	for _, p := range []string{png, html} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "open-loop", runs[0].SimulationID)
	assert.Equal(t, log.Ticks, runs[0].Ticks)
}

func TestRunRejectsBadInvocations(t *testing.T) {
	_, err := runCLI(t, "", "-preset", "nope")
	assert.Error(t, err)

	_, err = runCLI(t, "", "-preset", "open-loop", "input.json")
	assert.Error(t, err)

	_, err = runCLI(t, "", "-seed", "minus-one")
	assert.Error(t, err)

	_, err = runCLI(t, `{"simulation_meta": {"time_step": 0}}`)
	assert.Error(t, err)
}
