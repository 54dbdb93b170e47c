package gravnav

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFleet(t *testing.T) {
	states := map[string]VehicleStatus{
		"a": {State: State{X: 2, VY: 0.7}, Steps: 4},
		"b": {State: State{X: 1, VY: 1}, Done: true, Steps: 9},
	}
	ObserveFleet(7, 1, states)
	assert.Equal(t, 7.0, testutil.ToFloat64(fleetTickGauge))
	assert.Equal(t, 2.0, testutil.ToFloat64(fleetSizeGauge))
	assert.Equal(t, 1.0, testutil.ToFloat64(fleetLiveGauge))
	assert.Equal(t, 2.0, testutil.ToFloat64(vehicleRadiusGauge.WithLabelValues("a")))
	assert.Equal(t, 0.7, testutil.ToFloat64(vehicleSpeedGauge.WithLabelValues("a")))
	assert.Equal(t, 4.0, testutil.ToFloat64(vehicleStepsGauge.WithLabelValues("a")))
	assert.Equal(t, -0.5, testutil.ToFloat64(vehicleEnergyGauge.WithLabelValues("b")))
}

func TestObserveGuidance(t *testing.T) {
	ObserveGuidance("a", CoastTransfer)
	assert.Equal(t, float64(CoastTransfer), testutil.ToFloat64(guidancePhaseGauge.WithLabelValues("a")))
}

func TestCountTerminal(t *testing.T) {
	before := testutil.ToFloat64(terminalCounter.WithLabelValues("escaped"))
	CountTerminal("escaped")
	assert.Equal(t, before+1, testutil.ToFloat64(terminalCounter.WithLabelValues("escaped")))
}
