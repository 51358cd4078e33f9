package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hemantobora/auto-provision/internal/config"
)

func main() {
	selectionFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "roles",
			Usage: "Comma-separated roles to run (bypasses the menu)",
		},
		&cli.BoolFlag{
			Name:  "standard",
			Usage: "Select every role except cloud-init (bypasses the menu, not with --complete)",
		},
		&cli.BoolFlag{
			Name:  "complete",
			Usage: "Select every role including cloud-init (bypasses the menu, not with --standard)",
		},
	}

	remoteFlags := append([]cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "Server hostname or IP address (bypasses the prompt)",
		},
		&cli.StringFlag{
			Name:  "user",
			Usage: "SSH username (bypasses the prompt)",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "SSH port (bypasses the prompt)",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "SSH private key path; pass an empty value to use password authentication",
		},
	}, selectionFlags...)

	app := &cli.App{
		Name:  "auto-provision",
		Usage: "Pick Ansible roles from a menu and run them against this machine or a remote server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to " + config.FileName + " (default: inside the playbook directory)",
				EnvVars: []string{config.EnvConfig},
			},
			&cli.StringFlag{
				Name:    "playbook-dir",
				Usage:   "Directory holding site.yml and the inventory folder",
				EnvVars: []string{config.EnvPlaybookDir},
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Menu style: auto, numbered or cursor",
			},
			&cli.BoolFlag{
				Name:  "skip-collections",
				Usage: "Do not run ansible-galaxy before the playbook",
			},
			&cli.StringFlag{
				Name:  "archive-bucket",
				Usage: "S3 bucket to archive run records in",
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "AWS credential profile for the run archive",
				EnvVars: []string{"AWS_PROFILE"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print debug output",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "local",
				Usage:  "Provision this machine",
				Flags:  selectionFlags,
				Action: runLocal,
			},
			{
				Name:   "remote",
				Usage:  "Provision a remote server over SSH",
				Flags:  remoteFlags,
				Action: runRemote,
			},
			{
				Name:   "roles",
				Usage:  "List the available roles and selections",
				Action: listRoles,
			},
			{
				Name:  "cloud-init",
				Usage: "Generate cloud-init user data from the playbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "variant",
						Usage: "minimal, dev, full or custom (bypasses the prompt)",
					},
				},
				Action: generateCloudInit,
			},
		},
		// Default action when no command specified
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
