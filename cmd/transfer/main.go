package main

import (
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	gravnav "github.com/BrownParticleAstro/Grav-Nav-RL-Multiplayer"
)

// This code rehearses a two burn transfer in a single ship environment, then
// records the episode to the store and optionally streams every step to CSV.

var (
	initRadius float64
	maxSteps   int
	csvName    string
)

func init() {
	// Read flags
	flag.Float64Var(&initRadius, "r0", 2.0, "radius of the initial circular orbit")
	flag.IntVar(&maxSteps, "steps", 0, "step cap (0 uses the configured maximum)")
	flag.StringVar(&csvName, "csv", "", "stream steps to steps-<name>.csv")
}

func main() {
	flag.Parse()
	conf := gravnav.GravNavConfig()
	if maxSteps == 0 {
		maxSteps = conf.MaxSteps
	}

	env := gravnav.NewEnvironment(conf.GM, initRadius, conf.Dt, maxSteps)
	auto := gravnav.NewAutopilot(conf.GM, conf.TargetRadius, conf.Dt)
	auto.ApsisWindow = conf.ApsisWindow
	shaped := gravnav.NewShapedReward(conf.GM, conf.Dt, initRadius, maxSteps)

	var wg sync.WaitGroup
	var stepChan chan gravnav.StepRecord
	if csvName != "" {
		stepChan = make(chan gravnav.StepRecord, 10)
		exportConf := gravnav.ExportConfig{
			Filename: csvName,
			GM:       conf.GM,
			CSVAppend: func(rec gravnav.StepRecord) string {
				return fmt.Sprintf("%.6f", shaped.Score(rec.State, rec.Tick))
			},
			CSVAppendHdr: func() string { return "shaped" },
		}
		wg.Add(1)
		go func() {
			gravnav.StreamSteps(exportConf, stepChan)
			wg.Done()
		}()
	}

	store, err := gravnav.OpenEpisodeStore(conf.RecordPath)
	if err != nil {
		log.Fatalf("could not open episode store: %s", err)
	}

	ep := &gravnav.Episode{
		VehicleID:    "transfer",
		Mode:         gravnav.ModeModel,
		InitRadius:   initRadius,
		TargetRadius: conf.TargetRadius,
		StartedAt:    time.Now(),
	}

	st := env.Current()
	done := false
	for !done {
		action := auto.ThrustScalar(st)
		var reward float64
		st, reward, done = env.Step(action)
		ep.TotalReward += reward
		ep.Samples = append(ep.Samples, gravnav.Sample{
			Tick:   env.StepCount(),
			X:      st.X,
			Y:      st.Y,
			VX:     st.VX,
			VY:     st.VY,
			Action: action,
			Reward: reward,
		})
		if stepChan != nil {
			stepChan <- gravnav.StepRecord{
				Tick:      env.StepCount(),
				VehicleID: ep.VehicleID,
				State:     st,
				Action:    action,
				Reward:    reward,
				Done:      done,
			}
		}
	}

	if stepChan != nil {
		close(stepChan)
		wg.Wait()
	}

	r := st.RNorm()
	ep.Steps = env.StepCount()
	ep.FinalRadius = r
	ep.FinalEnergy = st.Energyξ(conf.GM)
	ep.Escaped = r > gravnav.EscapeRadius
	ep.Collided = r < gravnav.CollisionRadius
	ep.EndedAt = time.Now()
	if err = store.SaveEpisode(ep); err != nil {
		log.Fatalf("could not save episode: %s", err)
	}
	if err = store.Close(); err != nil {
		log.Fatalf("could not close episode store: %s", err)
	}

	log.Printf("transfer ended after %d steps: r=%.4f ξ=%.6f phase=%s", ep.Steps, r, ep.FinalEnergy, auto.Phase())
}
