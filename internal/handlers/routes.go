package handlers

import (
	"vpn-tg-admin/internal/commands"
)

// buildRoutes returns the command table. Every commands.All entry must have a route.
func (d *Dispatcher) buildRoutes() map[commands.Name]Route {
	return map[commands.Name]Route{
		commands.Help:      {MinArgs: 1, Handle: d.handleHelp},
		commands.Start:     {MinArgs: 1, Handle: d.handleHelp},
		commands.Status:    {MinArgs: 1, Handle: d.handleStatus},
		commands.Info:      {MinArgs: 1, Handle: d.handleInfo},
		commands.Bandwidth: {MinArgs: 1, Handle: d.handleBandwidth},
		commands.Restart:   {MinArgs: 1, Handle: d.handleRestart},
		commands.Create: {
			MinArgs: 4,
			Usage:   "<protocol> <username> <days>",
			Example: "ssh john 30",
			Handle:  d.handleCreate,
		},
		commands.List: {
			MinArgs: 2,
			Usage:   "<protocol>",
			Example: "ssh",
			Handle:  d.handleList,
		},
		commands.Delete: {
			MinArgs: 3,
			Usage:   "<protocol> <username>",
			Example: "ssh john",
			Handle:  d.handleDelete,
		},
		commands.Extend: {
			MinArgs: 4,
			Usage:   "<protocol> <username> <days>",
			Example: "ssh john 30",
			Handle:  d.handleExtend,
		},
		commands.Traffic: {
			MinArgs: 2,
			Usage:   "<username>",
			Example: "john",
			Handle:  d.handleTraffic,
		},
		commands.Cleanup: {MinArgs: 1, Handle: d.handleCleanup},
	}
}
