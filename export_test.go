package gravnav

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSteps(t *testing.T) {
	prevLoaded, prevConfig := cfgLoaded, config
	config = _gnconfig{OutputDir: t.TempDir()}
	cfgLoaded = true
	defer func() { cfgLoaded, config = prevLoaded, prevConfig }()

	conf := ExportConfig{
		Filename:     "test",
		GM:           1,
		CSVAppend:    func(rec StepRecord) string { return rec.VehicleID },
		CSVAppendHdr: func() string { return "vehicle_again" },
	}
	stepChan := make(chan StepRecord, 4)
	done := make(chan struct{})
	go func() {
		StreamSteps(conf, stepChan)
		close(done)
	}()
	stepChan <- StepRecord{Tick: 1, VehicleID: "a", State: State{X: 1, VY: 1}, Reward: 0.5}
	stepChan <- StepRecord{Tick: 2, VehicleID: "a", State: State{X: 1.1, VY: 0.9}, Done: true}
	close(stepChan)
	<-done

	raw, err := os.ReadFile(filepath.Join(config.OutputDir, "steps-test.csv"))
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "# Creation date (UTC):"))
	assert.Contains(t, text, "tick,vehicle,x,y,vx,vy,heading,action,reward,r,xi,done,vehicle_again")
	assert.Contains(t, text, "\n1,a,1.000000,0.000000,0.000000,1.000000,0.000000,0.000000,0.500000,1.000000,-0.500000,false,a")
	assert.Contains(t, text, ",true,a")
	assert.Contains(t, text, "# Simulation end (UTC):")
}

func TestStreamStepsNoRecords(t *testing.T) {
	prevLoaded, prevConfig := cfgLoaded, config
	config = _gnconfig{OutputDir: t.TempDir()}
	cfgLoaded = true
	defer func() { cfgLoaded, config = prevLoaded, prevConfig }()

	stepChan := make(chan StepRecord)
	close(stepChan)
	StreamSteps(ExportConfig{Filename: "empty", GM: 1}, stepChan)

	// No record ever arrived, so no file is created at all.
	_, err := os.Stat(filepath.Join(config.OutputDir, "steps-empty.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportConfigIsUseless(t *testing.T) {
	assert.True(t, ExportConfig{}.IsUseless())
	assert.False(t, ExportConfig{Filename: "x"}.IsUseless())
}
