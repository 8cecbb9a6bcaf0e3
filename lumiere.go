// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	"github.com/spf13/viper"

	"github.com/hwills/lumiere/engine"
	"github.com/hwills/lumiere/logger"
	"github.com/hwills/lumiere/remote"
)

var osExit = os.Exit // A variable to allow mocking os.Exit in tests

const DEVELOPMENT = "development"

// clientName is what we announce to remote-control integrations
var clientName string = "lumiere"

// clientVersion is the program version; usually set from BuildInfo
var clientVersion string = DEVELOPMENT

func readConfig(configFile *string) error {
	if configFile != nil && *configFile != "" {
		// use custom config file
		viper.SetConfigFile(*configFile)
	} else {
		// lookup default dirs
		viper.SetConfigName("lumiere")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/lumiere")
		viper.AddConfigPath(".")
	}

	viper.SetDefault("player.poll-interval-ms", 50)
	viper.SetDefault("player.seek-forward-s", 5)
	viper.SetDefault("player.seek-backward-s", 2)

	// the config file is optional, everything has a default
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("config file error: %s", err)
	}

	if viper.GetInt("player.poll-interval-ms") < 1 {
		return fmt.Errorf("config property player.poll-interval-ms must be >= 1")
	}
	return nil
}

func uiOptionsFromConfig() UiOptions {
	return UiOptions{
		PollInterval: time.Duration(viper.GetInt("player.poll-interval-ms")) * time.Millisecond,
		SeekForward:  time.Duration(viper.GetInt("player.seek-forward-s")) * time.Second,
		SeekBackward: time.Duration(viper.GetInt("player.seek-backward-s")) * time.Second,
	}
}

// return codes:
// 0 - OK
// 1 - generic errors
// 2 - config errors
func main() {
	help := flag.Bool("help", false, "Print usage")
	enableMpris := flag.Bool("mpris", false, "Enable MPRIS2")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	configFile := flag.String("config", "", "use config `file`")
	version := flag.Bool("version", false, "print the lumiere version and exit")

	flag.Parse()
	if *help {
		fmt.Printf("USAGE: %s <args> [uri...]\n", os.Args[0])
		flag.Usage()
		osExit(0)
	}
	if clientVersion == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok {
			clientVersion = bi.Main.Version
		}
	}
	if *version {
		fmt.Printf("lumiere %s\n", clientVersion)
		osExit(0)
	}

	// cpu/memprofile code straight from https://pkg.go.dev/runtime/pprof
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := readConfig(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read configuration: %v\n", err)
		osExit(2)
	}

	logger := logger.Init()

	// init mpv engine
	player, err := engine.NewPlayer(logger, engine.CachePath())
	if err != nil {
		fmt.Println("Unable to initialize mpv. Is mpv installed?")
		osExit(1)
	}

	var mprisPlayer *remote.MprisPlayer
	// init mpris2 player control (linux only but fails gracefully on other systems)
	if *enableMpris {
		mprisPlayer, err = remote.RegisterMprisPlayer(player, logger)
		if err != nil {
			fmt.Printf("Unable to register MPRIS with DBUS: %s\n", err)
			fmt.Println("Try running without MPRIS")
			osExit(1)
		}
		defer mprisPlayer.Close()
	}

	ui := InitGui(player, logger, uiOptionsFromConfig())

	// run engine event translation
	go player.EventLoop()

	if uris := flag.Args(); len(uris) > 0 {
		if err := player.LoadPlaylist(uris); err != nil {
			logger.PrintError("load playlist", err)
		}
	}

	// run main loop
	if err := ui.Run(); err != nil {
		panic(err)
	}

	// tear down the engine; this also ends the event translation goroutine
	player.Quit()

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
