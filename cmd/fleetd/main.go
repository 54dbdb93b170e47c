package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	gravnav "github.com/BrownParticleAstro/Grav-Nav-RL-Multiplayer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// This code runs a fleet of autopiloted ships at a fixed tick rate, exposes their
// telemetry to Prometheus and records terminated episodes to the store.

var (
	ships   int
	ticks   int
	csvName string
)

func init() {
	// Read flags
	flag.IntVar(&ships, "ships", 0, "number of ships (0 uses the configured fleet size)")
	flag.IntVar(&ticks, "ticks", 0, "stop after this many ticks (0 runs until every ship terminates)")
	flag.StringVar(&csvName, "csv", "", "stream steps to steps-<name>.csv")
}

func main() {
	flag.Parse()
	conf := gravnav.GravNavConfig()
	if ships == 0 {
		ships = conf.Ships
	}

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("serving metrics on %s/metrics", conf.MetricsAddr)
		if err := http.ListenAndServe(conf.MetricsAddr, nil); err != nil {
			log.Fatalf("metrics server: %s", err)
		}
	}()

	store, err := gravnav.OpenEpisodeStore(conf.RecordPath)
	if err != nil {
		log.Fatalf("could not open episode store: %s", err)
	}

	// Every even ship takes tangential thrust commands, every odd one flies by
	// turn and thrust like a remote manual client would.
	fleet := gravnav.NewFleet(conf.GM, conf.Dt, nil)
	autos := make(map[string]*gravnav.Autopilot, ships)
	started := make(map[string]time.Time, ships)
	wasDone := make(map[string]bool, ships)
	for i := 0; i < ships; i++ {
		id := fmt.Sprintf("ship-%d", i)
		mode := gravnav.ControlAI
		if i%2 == 1 {
			mode = gravnav.ControlManual
		}
		fleet.AddVehicle(id, mode)
		auto := gravnav.NewAutopilot(conf.GM, conf.TargetRadius, conf.Dt)
		auto.ApsisWindow = conf.ApsisWindow
		autos[id] = auto
		started[id] = time.Now()
	}

	var wg sync.WaitGroup
	var stepChan chan gravnav.StepRecord
	if csvName != "" {
		stepChan = make(chan gravnav.StepRecord, 10)
		wg.Add(1)
		go func() {
			gravnav.StreamSteps(gravnav.ExportConfig{Filename: csvName, GM: conf.GM}, stepChan)
			wg.Done()
		}()
	}

	saveEpisode := func(id string, vs gravnav.VehicleStatus) {
		collided := vs.State.RNorm() < gravnav.CollisionRadius
		escaped := vs.State.RNorm() > gravnav.EscapeRadius
		ep := &gravnav.Episode{
			VehicleID:    id,
			Mode:         vs.Mode.String(),
			InitRadius:   vs.InitRadius,
			TargetRadius: conf.TargetRadius,
			Steps:        vs.Steps,
			FinalRadius:  vs.State.RNorm(),
			FinalEnergy:  vs.State.Energyξ(conf.GM),
			Escaped:      escaped,
			Collided:     collided,
			StartedAt:    started[id],
			EndedAt:      time.Now(),
		}
		if err := store.SaveEpisode(ep); err != nil {
			log.Printf("could not save episode for %s: %s", id, err)
		}
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(time.Duration(conf.Dt * float64(time.Second)))
	defer ticker.Stop()

	running := true
	for running {
		select {
		case <-sigc:
			log.Print("interrupted, shutting down")
			running = false

		case <-ticker.C:
			states := fleet.States()
			cmds := make(map[string]gravnav.Command, len(states))
			actions := make(map[string]float64, len(states))
			for id, vs := range states {
				if vs.Done {
					continue
				}
				if vs.Mode == gravnav.ControlAI {
					a := autos[id].ThrustScalar(vs.State)
					cmds[id] = gravnav.Tangential{Thrust: a}
					actions[id] = a
				} else {
					turn, thrust := autos[id].Steer(vs.State, vs.Heading)
					cmds[id] = gravnav.Helm{Turn: turn, Thrust: thrust}
					actions[id] = thrust
				}
			}
			fleet.Step(cmds)

			states = fleet.States()
			gravnav.ObserveFleet(fleet.Tick(), conf.GM, states)
			live := 0
			for id, vs := range states {
				gravnav.ObserveGuidance(id, autos[id].Phase())
				if !vs.Done {
					live++
				} else if !wasDone[id] {
					wasDone[id] = true
					outcome := "escaped"
					if vs.State.RNorm() < gravnav.CollisionRadius {
						outcome = "collided"
					}
					gravnav.CountTerminal(outcome)
					saveEpisode(id, vs)
				}
			}
			if stepChan != nil {
				for id := range cmds {
					vs := states[id]
					stepChan <- gravnav.StepRecord{
						Tick:      fleet.Tick(),
						VehicleID: id,
						State:     vs.State,
						Heading:   vs.Heading,
						Action:    actions[id],
						Done:      vs.Done,
					}
				}
			}
			if live == 0 {
				log.Print("every ship is terminal, shutting down")
				running = false
			} else if ticks > 0 && fleet.Tick() >= ticks {
				log.Printf("tick limit %d reached, shutting down", ticks)
				running = false
			}
		}
	}

	// Ships still flying get a summary row too, without a terminal outcome.
	for id, vs := range fleet.States() {
		if !vs.Done {
			saveEpisode(id, vs)
		}
	}
	if stepChan != nil {
		close(stepChan)
		wg.Wait()
	}
	if err = store.Close(); err != nil {
		log.Fatalf("could not close episode store: %s", err)
	}
}
