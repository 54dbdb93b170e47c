package gravnav

import (
	"fmt"
	"os"
	"time"
)

// StepRecord is one vehicle step bound for export.
type StepRecord struct {
	Tick      int
	VehicleID string
	State     State
	Heading   float64
	Action    float64
	Reward    float64
	Done      bool
}

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename     string
	GM           float64
	Timestamp    bool
	CSVAppend    func(rec StepRecord) string // Custom export (do not include leading comma)
	CSVAppendHdr func() string               // Header for the custom export
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// createStepsCSVFile returns a file which requires a defer close statement!
func createStepsCSVFile(filename string, conf ExportConfig) *os.File {
	config := GravNavConfig()
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/steps-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", config.OutputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/steps-%s.csv", config.OutputDir, filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are tick, vehicle, position, velocity, heading, action, reward, radius, energy, done
tick,vehicle,x,y,vx,vy,heading,action,reward,r,xi,done,`, time.Now()))
	if conf.CSVAppendHdr != nil {
		// Append the headers for the appended columns.
		f.WriteString(conf.CSVAppendHdr())
	}
	return f
}

// StreamSteps streams the output of the channel to a CSV file. It returns once the
// channel closes, so run it in its own goroutine alongside the simulation.
func StreamSteps(conf ExportConfig, stepChan <-chan (StepRecord)) {
	var f *os.File
	for {
		rec, more := <-stepChan
		if more {
			if f == nil {
				f = createStepsCSVFile(conf.Filename, conf)
			}
			asTxt := fmt.Sprintf("%d,%s,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%v",
				rec.Tick, rec.VehicleID, rec.State.X, rec.State.Y, rec.State.VX, rec.State.VY,
				rec.Heading, rec.Action, rec.Reward, rec.State.RNorm(), rec.State.Energyξ(conf.GM), rec.Done)
			if conf.CSVAppend != nil {
				asTxt += "," + conf.CSVAppend(rec)
			}
			if _, err := f.WriteString("\n" + asTxt); err != nil {
				panic(err)
			}
		} else {
			// The channel is closed, hence the simulation is over.
			if f != nil {
				f.WriteString(fmt.Sprintf("\n# Simulation end (UTC): %s\n", time.Now().UTC()))
				f.Close()
			}
			break
		}
	}
}
