package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"kartedit/log"
)

const version = "0.3.0"

type mode byte

const (
	showMode     mode = iota // Show item probabilities
	editMode                 // Edit a single record
	exportMode               // Export item probabilities to a file
	importMode               // Import item probabilities from a file
	verifyMode               // Check several roms
	romInfosMode             // Show ROM infos
	configMode               // Show/update configuration
	versionMode              // Show kartedit version
)

type (
	CLI struct {
		Show     Show      `cmd:"" help:"Show item probabilities."`
		Edit     Edit      `cmd:"" help:"Edit one item probability record and save the ROM."`
		Export   Export    `cmd:"" help:"Export item probabilities to a file."`
		Import   Import    `cmd:"" help:"Import item probabilities from a file and save the ROM."`
		Verify   Verify    `cmd:"" help:"Check the item probabilities of several ROMs."`
		RomInfos RomInfos  `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Config   ConfigCmd `cmd:"" help:"Show the configuration, or update it."`
		Version  Version   `cmd:"" help:"Show kartedit version."`

		Log        logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		ConfigFile string     `name:"config-file" help:"${config_help}" type:"path" placeholder:"FILE"`
		Offset     hexint     `name:"offset" help:"${offset_help}" placeholder:"OFFSET"`

		mode mode
	}

	Show struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`

		Mode  string `name:"mode" help:"Only show this race mode." enum:"all,grandprix,matchrace,battle" default:"all"`
		Set   int    `name:"set" help:"Only show this probability set (0-6)." default:"-1"`
		Plain bool   `name:"plain" help:"Disable colors."`
	}

	Edit struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`

		Mode    string         `name:"mode" help:"Race mode." enum:"grandprix,matchrace,battle" required:""`
		Set     int            `name:"set" help:"Probability set (0-6)." default:"0"`
		Cond    string         `name:"cond" help:"${cond_help}"`
		Item    map[string]int `name:"item" help:"Set the weight of an item." placeholder:"KIND=WEIGHT"`
		Display string         `name:"display" help:"${display_help}"`
		Out     string         `name:"out" help:"Save to this file instead of the input ROM." type:"path"`
	}

	Export struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		File    string `arg:"" name:"file" type:"path"`

		Format string `name:"format" help:"${format_help}" enum:"auto,raw,yaml,json" default:"auto"`
	}

	Import struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		File    string `arg:"" name:"file" type:"existingfile"`

		Format string `name:"format" help:"${format_help}" enum:"auto,raw,yaml,json" default:"auto"`
		Out    string `name:"out" help:"Save to this file instead of the input ROM." type:"path"`
	}

	Verify struct {
		RomPaths []string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	ConfigCmd struct {
		ItemsOffset hexint `name:"items-offset" help:"Store the item probabilities offset." placeholder:"OFFSET"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":     "Enable logging for specified modules.",
	"config_help":  "Use this configuration file instead of the default one.",
	"offset_help":  "Offset of the item probabilities in the ROM (overrides configuration).",
	"cond_help":    "Lap/rank condition. grandprix: lap1-1st, lap2to5-2nd-4th, lap2to5-5th-8th. matchrace: lap1, lap2to5-1st, lap2to5-2nd.",
	"display_help": "Display mode: all-items, no-feathers, no-coins-or-lightnings, no-ghosts, no-ghosts-or-feathers.",
	"format_help":  "File format, auto guesses from the file extension.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("kartedit"),
		kong.Description("Item probabilities editor for kart racing ROMs."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "show":
		cfg.mode = showMode
	case "edit":
		cfg.mode = editMode
	case "export":
		cfg.mode = exportMode
	case "import":
		cfg.mode = importMode
	case "verify":
		cfg.mode = verifyMode
	case "rom-infos":
		cfg.mode = romInfosMode
	case "config":
		cfg.mode = configMode
	default:
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() == "" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

// hexint is an integer flag accepting decimal, 0x-prefixed hexadecimal, or
// $-prefixed hexadecimal values.
type hexint int

// Decode implements kong.MapperValue interface.
func (h *hexint) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	s, ok := tok.Value.(string)
	if !ok {
		return fmt.Errorf("expected an offset, got %v", tok.Value)
	}
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid offset %q", tok.Value)
	}
	if v < 0 {
		return fmt.Errorf("negative offset %d", v)
	}
	*h = hexint(v)
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}

var stdout io.Writer = os.Stdout
