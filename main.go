package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/BurntSushi/toml"

	"kartedit/editor"
	"kartedit/log"
	"kartedit/rom"
)

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case versionMode:
		fmt.Fprintln(stdout, "kartedit", version)
		return
	case romInfosMode:
		r, err := rom.Open(cli.RomInfos.RomPath)
		checkf(err, "failed to open rom")
		r.PrintInfos(stdout)
		return
	}

	cfg := loadConfig(cli)

	switch cli.mode {
	case showMode:
		checkf(showMain(cli.Show, cfg), "show")
	case editMode:
		checkf(editMain(cli.Edit, cfg), "edit")
	case exportMode:
		checkf(exportMain(cli.Export, cfg), "export")
	case importMode:
		checkf(importMain(cli.Import, cfg), "import")
	case verifyMode:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if !verifyMain(ctx, cli.Verify, cfg) {
			stop()
			os.Exit(1)
		}
	case configMode:
		checkf(configMain(cli, cfg), "config")
	}
}

// loadConfig loads the configuration file and applies command line
// overrides.
func loadConfig(cli CLI) editor.Config {
	var cfg editor.Config
	if cli.ConfigFile != "" {
		var err error
		cfg, err = editor.LoadConfig(cli.ConfigFile)
		checkf(err, "failed to load configuration %s", cli.ConfigFile)
	} else {
		cfg = editor.LoadConfigOrDefault()
	}

	if cli.Offset != 0 {
		cfg.Items.Offset = int(cli.Offset)
	}
	log.ModCLI.WithField("offset", cfg.Items.Offset).Debugf("configuration loaded")
	return cfg
}

func configMain(cli CLI, cfg editor.Config) error {
	path := cli.ConfigFile
	if path == "" {
		path = editor.ConfigPath()
	}

	if cli.Config.ItemsOffset != 0 {
		cfg.Items.Offset = int(cli.Config.ItemsOffset)
		if err := editor.SaveConfigFile(path, cfg); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "# %s\n", path)
	return toml.NewEncoder(stdout).Encode(cfg)
}
