// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// syncFlags are shared by every sync strategy command.
func syncFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output the run summary as JSON",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Concurrent fetch workers (overrides config)",
		},
		&cli.IntFlag{
			Name:  "margin",
			Usage: "Extra folios probed past the highest known number (overrides config)",
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "Work orders per listing page (overrides config)",
		},
	}
}

// setupCommand initializes the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// syncCommand groups the fetch-and-store strategies.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Mirror work orders from the maintenance API",
		Commands: []*cli.Command{
			{
				Name:   "full",
				Usage:  "Probe every folio from 1 up to the highest known plus a safety margin",
				Flags:  syncFlags(),
				Action: r.SyncFull,
			},
			{
				Name:   "pages",
				Usage:  "Walk the paginated work-order listing until it runs dry",
				Flags:  syncFlags(),
				Action: r.SyncPages,
			},
			{
				Name:   "active",
				Usage:  "Re-fetch open and in-review orders, cancelling ones that vanished upstream",
				Flags:  syncFlags(),
				Action: r.SyncActive,
			},
			{
				Name:   "gaps",
				Usage:  "Fetch folios missing from the contiguous local sequence",
				Flags:  syncFlags(),
				Action: r.SyncGaps,
			},
			{
				Name:   "dates",
				Usage:  "Fill missing review and maintenance dates on stored orders",
				Flags:  syncFlags(),
				Action: r.SyncDates,
			},
			{
				Name:   "notes",
				Usage:  "Fill missing observations on stored orders",
				Flags:  syncFlags(),
				Action: r.SyncNotes,
			},
		},
	}
}

// reclassifyCommand recomputes derived groups without touching the network.
func reclassifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reclassify",
		Usage: "Recompute location, technician and task-type groups for stored rows",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run summary as JSON",
			},
		},
		Action: r.Reclassify,
	}
}
