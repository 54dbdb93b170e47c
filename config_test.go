package gravnav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	cfgLoaded = false
	config = _gnconfig{}

	conf := GravNavConfig()
	assert.Equal(t, 1.0, conf.GM)
	assert.Equal(t, 1.0/60, conf.Dt)
	assert.Equal(t, 1000, conf.MaxSteps)
	assert.Equal(t, "./", conf.OutputDir)
	assert.Equal(t, 1.0, conf.TargetRadius)
	assert.Equal(t, 0.1, conf.ApsisWindow)
	assert.Equal(t, "actuator", conf.Form)
	assert.Equal(t, ModeManual, conf.JoinMode)
	assert.Equal(t, 4, conf.Ships)
	assert.NotEmpty(t, conf.ServerURL)
	assert.NotEmpty(t, conf.ClientName)
	assert.NotEmpty(t, conf.RecordPath)
	assert.NotEmpty(t, conf.MetricsAddr)

	// The loader memoizes.
	assert.Equal(t, conf, GravNavConfig())
}
