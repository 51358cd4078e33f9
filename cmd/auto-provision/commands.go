package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/hemantobora/auto-provision/internal/archive"
	"github.com/hemantobora/auto-provision/internal/catalog"
	"github.com/hemantobora/auto-provision/internal/cloudinit"
	"github.com/hemantobora/auto-provision/internal/config"
	"github.com/hemantobora/auto-provision/internal/engine"
	"github.com/hemantobora/auto-provision/internal/menu"
	"github.com/hemantobora/auto-provision/internal/models"
	"github.com/hemantobora/auto-provision/internal/prompts"
	"github.com/hemantobora/auto-provision/internal/selection"
	"github.com/hemantobora/auto-provision/internal/session"
	"github.com/hemantobora/auto-provision/internal/target"
	"github.com/hemantobora/auto-provision/internal/ui"
)

var stdio = terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

// environment is what every command needs after flags and the config file are merged
type environment struct {
	cfg     *config.Config
	console *ui.Console
	tty     bool
}

func loadEnvironment(c *cli.Context) (*environment, error) {
	if c.Bool("no-color") {
		ui.DisableColor()
	}
	console := ui.NewConsole()
	console.SetVerbose(c.Bool("verbose"))

	path, required := config.Locate(c.String("config"), c.String("playbook-dir"))
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		console.Debugf("Loaded configuration from %s", cfg.Source)
	}

	if dir := c.String("playbook-dir"); dir != "" {
		cfg.PlaybookDir = dir
	}
	if style := c.String("style"); style != "" {
		cfg.Style = style
	}
	if bucket := c.String("archive-bucket"); bucket != "" {
		cfg.Archive.Bucket = bucket
	}
	if profile := c.String("profile"); profile != "" {
		cfg.Archive.Profile = profile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &environment{
		cfg:     cfg,
		console: console,
		tty:     term.IsTerminal(int(os.Stdin.Fd())),
	}, nil
}

func runLocal(c *cli.Context) error {
	return runSession(c, func(*environment) session.TargetSource {
		return func() (models.TargetDescriptor, error) { return target.Local(), nil }
	})
}

func runRemote(c *cli.Context) error {
	return runSession(c, func(env *environment) session.TargetSource {
		preset := target.Preset{
			Host:    c.String("host"),
			User:    c.String("user"),
			Port:    c.Int("port"),
			KeyPath: c.String("key"),
			KeySet:  c.IsSet("key"),
		}
		return func() (models.TargetDescriptor, error) {
			sshCfg, err := target.LoadSSHConfig(target.DefaultSSHConfigPath())
			if err != nil {
				env.console.Warnf("Ignoring ~/.ssh/config: %v", err)
			}
			env.console.Infof("Please provide details for the remote server:")
			collector := &target.Collector{Prompter: prompts.NewSurveyPrompter(stdio), SSH: sshCfg}
			return collector.Remote(preset)
		}
	})
}

func runSession(c *cli.Context, source func(*environment) session.TargetSource) error {
	env, err := loadEnvironment(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	style, err := menu.ParseStyle(env.cfg.Style)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	style = style.Resolve(env.tty)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	pipeline := engine.NewPipeline(env.cfg.PlaybookDir, engine.ExecRunner{}, env.console)
	pipeline.Binary = env.cfg.Engine
	pipeline.Playbook = env.cfg.Playbook
	pipeline.LocalInventory = env.cfg.Inventory.Local
	pipeline.RemoteInventory = env.cfg.Inventory.Remote

	s := &session.Session{
		Catalog:  catalog.Default(),
		Pipeline: pipeline,
		Console:  env.console,
		NewMenu: func(state *selection.State) menu.Controller {
			// The menu closes its input on return, restoring the terminal
			// before the engine inherits it
			var in menu.Input
			if style == menu.StyleCursor {
				in = menu.NewKeyInput(stdio)
			} else {
				in = menu.NewLineInput(os.Stdin)
			}
			return menu.New(style, state, in, env.console, menu.Options{ClearScreen: env.tty})
		},
	}

	if !c.Bool("skip-collections") {
		s.Collections = &engine.CollectionInstaller{
			Runner:       engine.ExecRunner{},
			Binary:       env.cfg.Galaxy,
			Requirements: env.cfg.Requirements,
			Dir:          env.cfg.PlaybookDir,
			Console:      env.console,
		}
	}

	if env.cfg.ArchiveEnabled() {
		store, err := archive.NewS3Store(ctx, env.cfg.Archive)
		if err != nil {
			env.console.Warnf("Run archive disabled: %v", err)
		} else {
			s.Archiver = &archive.Archiver{Store: store, Prefix: env.cfg.Archive.Prefix, Console: env.console}
		}
	}

	aggregate, err := session.AggregateFromFlags(c.Bool("standard"), c.Bool("complete"))
	if err != nil {
		env.console.Errorf("%v", err)
		return cli.Exit("", 1)
	}
	req := session.Request{
		Target:    source(env),
		Roles:     session.ParseRoles(c.String("roles")),
		Aggregate: aggregate,
	}

	rep, err := s.Run(ctx, req)

	code := session.ExitCode(rep, err)
	if err != nil && !errors.Is(err, models.ErrInvocationFailed) {
		env.console.Errorf("%v", err)
	}
	if code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

func listRoles(c *cli.Context) error {
	env, err := loadEnvironment(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cat := catalog.Default()
	console := env.console

	console.Println(console.Bold("Available roles:"))
	for i, name := range cat.Features() {
		suffix := ""
		if cat.IsOptIn(name) {
			suffix = console.Yellow(" (only with 'full')")
		}
		console.Printf("%2d. %s%s\n", i+1, name, suffix)
	}
	console.Printf("%2d. all  (%s)\n", cat.Len()+1, cat.Describe(catalog.Standard))
	console.Printf("%2d. full (%s)\n", cat.Len()+2, cat.Describe(catalog.Complete))
	return nil
}

func generateCloudInit(c *cli.Context) error {
	env, err := loadEnvironment(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	console := env.console

	if _, err := engine.CheckInstalled(env.cfg.Engine); err != nil {
		console.Errorf("%v", err)
		return cli.Exit("", 1)
	}

	prompter := prompts.NewSurveyPrompter(stdio)
	choice := c.String("variant")
	if choice == "" {
		options := make([]string, 0, len(cloudinit.Variants))
		for _, v := range cloudinit.Variants {
			options = append(options, fmt.Sprintf("%s: %s", v.Variant, v.Description))
		}
		answer, err := prompter.Select("Select a cloud-init variant:", options, options[0])
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		choice, _, _ = strings.Cut(answer, ":")
	}

	variant, ok := cloudinit.ParseVariant(choice)
	if !ok {
		console.Warnf("Invalid choice '%s'. Defaulting to minimal.", choice)
	}

	var custom *cloudinit.CustomVars
	if variant == cloudinit.Custom {
		vars, err := cloudinit.PromptCustom(prompter)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		custom = &vars
	}

	gen := &cloudinit.Generator{
		Runner:      engine.ExecRunner{},
		Binary:      env.cfg.Engine,
		Playbook:    env.cfg.Playbook,
		PlaybookDir: env.cfg.PlaybookDir,
		Console:     console,
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	out, err := gen.Generate(ctx, variant, custom)
	if err != nil {
		console.Errorf("%v", err)
		return cli.Exit("", 1)
	}
	console.Successf("Cloud-init config ready at %s. Use it for VM/cloud provisioning.", out)
	return nil
}
