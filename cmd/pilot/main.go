package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	gravnav "github.com/BrownParticleAstro/Grav-Nav-RL-Multiplayer"
)

// This code connects to a multiplayer server, joins for one ship and lets the
// autopilot answer every action request until the server goes away.

var (
	serverURL string
	name      string
	form      string
	target    float64
)

func init() {
	// Read flags
	flag.StringVar(&serverURL, "url", "", "server websocket URL (empty uses the configured one)")
	flag.StringVar(&name, "name", "", "pilot name announced at join (empty uses the configured one)")
	flag.StringVar(&form, "form", "", "command form, actuator or vector (empty uses the configured one)")
	flag.Float64Var(&target, "target", 0, "target orbit radius (0 uses the configured one)")
}

func main() {
	flag.Parse()
	conf := gravnav.GravNavConfig()
	if serverURL == "" {
		serverURL = conf.ServerURL
	}
	if name == "" {
		name = conf.ClientName
	}
	if form == "" {
		form = conf.Form
	}
	if target == 0 {
		target = conf.TargetRadius
	}

	var cmdForm gravnav.CommandForm
	switch form {
	case "actuator":
		cmdForm = gravnav.FormActuator
	case "vector":
		cmdForm = gravnav.FormVector
	default:
		log.Fatalf("unknown command form `%s`", form)
	}

	auto := gravnav.NewAutopilot(conf.GM, target, conf.Dt)
	auto.ApsisWindow = conf.ApsisWindow

	conn, err := gravnav.DialWS(serverURL)
	if err != nil {
		log.Fatalf("could not reach %s: %s", serverURL, err)
	}
	session := gravnav.NewSession(conn, auto, cmdForm, conf.JoinMode, name)
	if err = session.Join(); err != nil {
		log.Fatalf("join failed: %s", err)
	}
	log.Printf("joined as ship %s", session.ShipID())

	ctx, cancel := context.WithCancel(context.Background())
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	if err = session.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("session ended: %s", err)
	}
}
