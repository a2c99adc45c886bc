// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the wordrank completion server or its debugging CLI.

wordrank keeps a scored vocabulary in a ranked trie. Every trie node knows the
best score below it, so the top k completions of a prefix are found by
expanding the best branches first and stopping as soon as nothing left can
enter the result.

# Usage

Start the msgpack server on stdin/stdout:

	wordrank -data /path/to/dict

Run the interactive CLI with debug logs:

	wordrank -c -d -limit 10

The data directory holds dict_NNNN.bin chunk files and/or .txt files with
one "word score" pair per line.

# Configuration

Options are read from a TOML file (see pkg/config); -config overrides the
default location, which is created with defaults on first run:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dict]
	dir = "data/"
	max_words = 50000
	min_score = 0

	[cache]
	enabled = true
	max_prefixes = 2048

# Command Line Flags

	-version   Show current version
	-config    Path to a config.toml
	-data      Dictionary directory (overrides dict.dir)
	-d         Enable debug logging
	-c         Run the CLI instead of the server
	-limit     Suggestions per CLI request (overrides cli.default_limit)
	-words     Maximum words to load, 0 for all (overrides dict.max_words)
	-no-filter Disable CLI input filtering
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordrank/internal/cli"
	"github.com/bastiangx/wordrank/internal/logger"
	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/config"
	"github.com/bastiangx/wordrank/pkg/server"
	"github.com/bastiangx/wordrank/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordrank"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags and config into the completer, then hands control to the
// server or the CLI.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	dataDir := flag.String("data", "", "Directory containing dictionary files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", -1, "Number of suggestions to return in CLI mode")
	wordLimit := flag.Int("words", -1, "Maximum number of words to load (use 0 for all words)")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	// stdout carries msgpack in server mode
	log.SetOutput(os.Stderr)

	appConfig, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", usedPath)

	if *dataDir != "" {
		appConfig.Dict.Dir = *dataDir
	}
	if *wordLimit >= 0 {
		appConfig.Dict.MaxWords = *wordLimit
	}
	if *limit >= 0 {
		appConfig.CLI.DefaultLimit = *limit
	}

	resolvedDataDir := ""
	if appConfig.Dict.Dir != "" {
		resolvedDataDir, err = utils.ResolveDataDir(appConfig.Dict.Dir)
		if err != nil {
			log.Warnf("Running with empty dict: %v", err)
		}
	}

	cacheSize := 0
	if appConfig.Cache.Enabled {
		cacheSize = appConfig.Cache.MaxPrefixes
	}

	log.Debugf("Init completer: dir=[%s], maxWords=[%d], cache=[%d]", resolvedDataDir, appConfig.Dict.MaxWords, cacheSize)
	completer := suggest.NewDictCompleter(resolvedDataDir, appConfig.Dict.MaxWords, appConfig.Dict.MinScore, cacheSize)
	if err := completer.Initialize(); err != nil {
		log.Fatalf("Failed to init completer: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(
			completer,
			logger.NewWithConfig(os.Stdout, "", log.GetLevel(), false, false, log.TextFormatter),
			appConfig.CLI.DefaultMinLen,
			appConfig.CLI.DefaultMaxLen,
			appConfig.CLI.DefaultLimit,
			*noFilter || appConfig.CLI.DefaultNoFilter,
		)
		if err := handler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(resolvedDataDir, completer.Stats()["totalWords"])

	srv := server.NewServer(completer, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordrank ] ranked prefix completions")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dataDir string, words int) {
	info := logger.NewWithConfig(os.Stderr, AppName, log.InfoLevel, false, false, log.TextFormatter)
	info.Infof("Version: %s", Version)
	info.Infof("Process ID: [ %d ]", os.Getpid())
	info.Infof("data dir: ( %s )", dataDir)
	info.Infof("words: %s", utils.FormatWithCommas(int64(words)))
	info.Info("status: ready")
}
