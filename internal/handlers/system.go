package handlers

import (
	"context"

	"vpn-tg-admin/internal/commands"
	apperrors "vpn-tg-admin/internal/errors"
	"vpn-tg-admin/internal/helpers"
)

// handleHelp handles the help and start commands
func (d *Dispatcher) handleHelp(ctx context.Context, cmd commands.Command) (Result, error) {
	res := reply(helpers.FormatHelp(d.prefix))
	res.QuickActions = d.quickActions()
	return res, nil
}

// handleStatus handles the status command
func (d *Dispatcher) handleStatus(ctx context.Context, cmd commands.Command) (Result, error) {
	status, err := d.vpnService.GetServiceStatus(ctx)
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: "Failed to get system status", Err: err}
	}
	return reply(helpers.FormatStatus(status)), nil
}

// handleInfo handles the info command
func (d *Dispatcher) handleInfo(ctx context.Context, cmd commands.Command) (Result, error) {
	info, err := d.vpnService.GetSystemInfo(ctx)
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: "Failed to get server information", Err: err}
	}
	return reply(helpers.FormatServerInfo(info)), nil
}

// handleBandwidth handles the bandwidth command
func (d *Dispatcher) handleBandwidth(ctx context.Context, cmd commands.Command) (Result, error) {
	bandwidth, err := d.vpnService.GetBandwidth(ctx)
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: "Failed to get bandwidth usage", Err: err}
	}
	return reply(helpers.FormatBandwidth(bandwidth)), nil
}

// handleRestart handles the restart command
func (d *Dispatcher) handleRestart(ctx context.Context, cmd commands.Command) (Result, error) {
	message, err := d.vpnService.RestartServices(ctx)
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: "Failed to restart VPN services", Err: err}
	}
	if message == "" {
		message = "VPN services restarted"
	}
	return reply("✅ " + message), nil
}
