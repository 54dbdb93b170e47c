package gravnav

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	fleetTickGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gravnav_fleet_tick"})
	fleetSizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gravnav_fleet_vehicles"})
	fleetLiveGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gravnav_fleet_live_vehicles"})

	vehicleRadiusGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gravnav_vehicle_radius",
			Help: "Current distance of each vehicle from the central mass",
		},
		[]string{"vehicle"},
	)
	vehicleSpeedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gravnav_vehicle_speed",
			Help: "Current speed of each vehicle",
		},
		[]string{"vehicle"},
	)
	vehicleEnergyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gravnav_vehicle_energy",
			Help: "Specific orbital energy of each vehicle",
		},
		[]string{"vehicle"},
	)
	vehicleStepsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gravnav_vehicle_steps",
			Help: "Steps taken by each vehicle since it was added",
		},
		[]string{"vehicle"},
	)
	guidancePhaseGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gravnav_guidance_phase",
			Help: "Guidance phase of each vehicle's autopilot",
		},
		[]string{"vehicle"},
	)
	terminalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravnav_vehicles_terminal_total",
			Help: "Vehicles that reached a terminal radius, by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		fleetTickGauge, fleetSizeGauge, fleetLiveGauge,
		vehicleRadiusGauge, vehicleSpeedGauge, vehicleEnergyGauge,
		vehicleStepsGauge, guidancePhaseGauge, terminalCounter,
	)
}

// ObserveFleet pushes one fleet snapshot to the exported gauges.
func ObserveFleet(tick int, μ float64, states map[string]VehicleStatus) {
	fleetTickGauge.Set(float64(tick))
	fleetSizeGauge.Set(float64(len(states)))
	live := 0
	for id, vs := range states {
		if !vs.Done {
			live++
		}
		vehicleRadiusGauge.WithLabelValues(id).Set(vs.State.RNorm())
		vehicleSpeedGauge.WithLabelValues(id).Set(vs.State.VNorm())
		vehicleEnergyGauge.WithLabelValues(id).Set(vs.State.Energyξ(μ))
		vehicleStepsGauge.WithLabelValues(id).Set(float64(vs.Steps))
	}
	fleetLiveGauge.Set(float64(live))
}

// ObserveGuidance exports the phase of one vehicle's autopilot.
func ObserveGuidance(vehicle string, phase GuidancePhase) {
	guidancePhaseGauge.WithLabelValues(vehicle).Set(float64(phase))
}

// CountTerminal bumps the terminal counter, with outcome "escaped" or "collided".
func CountTerminal(outcome string) {
	terminalCounter.WithLabelValues(outcome).Inc()
}
