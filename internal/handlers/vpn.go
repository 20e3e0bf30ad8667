package handlers

import (
	"context"
	"fmt"
	"strconv"

	"vpn-tg-admin/internal/commands"
	"vpn-tg-admin/internal/constants"
	apperrors "vpn-tg-admin/internal/errors"
	"vpn-tg-admin/internal/helpers"
	"vpn-tg-admin/internal/models"
)

// parseDays converts a days argument to an int. A token that is not a number
// is passed through unchanged so the backend can reject it.
func parseDays(token string) any {
	if days, err := strconv.Atoi(token); err == nil {
		return days
	}
	return token
}

// handleCreate handles: create <protocol> <username> <days>
func (d *Dispatcher) handleCreate(ctx context.Context, cmd commands.Command) (Result, error) {
	protocol := models.Protocol(cmd.Arg(0))
	username := cmd.Arg(1)

	cfg, err := d.vpnService.CreateUser(ctx, protocol, username, d.newPassword(), parseDays(cmd.Arg(2)))
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: fmt.Sprintf("Failed to create %s user", protocol), Err: err}
	}

	res := reply("✅ VPN User Created Successfully!\n\n" + helpers.FormatVPNConfig(protocol, cfg))
	res.ShareLinks = cfg.Config.ShareLinks(constants.ShareLinkPrefix)
	return res, nil
}

// handleList handles: list <protocol|all>
func (d *Dispatcher) handleList(ctx context.Context, cmd commands.Command) (Result, error) {
	protocol := models.Protocol(cmd.Arg(0))

	if protocol == models.ProtocolAll {
		users, err := d.vpnService.ListAllUsers(ctx)
		if err != nil {
			return Result{}, &apperrors.CommandError{Summary: "Failed to list users", Err: err}
		}
		return reply(helpers.FormatAllUsers(users)), nil
	}

	users, err := d.vpnService.ListUsers(ctx, protocol)
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: fmt.Sprintf("Failed to list %s users", protocol), Err: err}
	}
	return reply(helpers.FormatUserList(protocol, users)), nil
}

// handleDelete handles: delete <protocol> <username>
func (d *Dispatcher) handleDelete(ctx context.Context, cmd commands.Command) (Result, error) {
	protocol := models.Protocol(cmd.Arg(0))
	username := cmd.Arg(1)

	if err := d.vpnService.DeleteUser(ctx, protocol, username); err != nil {
		return Result{}, &apperrors.CommandError{Summary: fmt.Sprintf("Failed to delete %s user %s", protocol, username), Err: err}
	}
	return reply(fmt.Sprintf("✅ Successfully deleted %s user: %s", protocol, username)), nil
}

// handleExtend handles: extend <protocol> <username> <days>
func (d *Dispatcher) handleExtend(ctx context.Context, cmd commands.Command) (Result, error) {
	protocol := models.Protocol(cmd.Arg(0))
	username := cmd.Arg(1)
	days := cmd.Arg(2)

	if err := d.vpnService.ExtendUser(ctx, protocol, username, parseDays(days)); err != nil {
		return Result{}, &apperrors.CommandError{Summary: fmt.Sprintf("Failed to extend %s user %s", protocol, username), Err: err}
	}
	return reply(fmt.Sprintf("✅ Successfully extended %s user: %s by %s days", protocol, username, days)), nil
}

// handleTraffic handles: traffic <username>
func (d *Dispatcher) handleTraffic(ctx context.Context, cmd commands.Command) (Result, error) {
	username := cmd.Arg(0)

	traffic, err := d.vpnService.GetUserTraffic(ctx, username)
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: fmt.Sprintf("Failed to get traffic for user %s", username), Err: err}
	}
	return reply(helpers.FormatTraffic(username, traffic)), nil
}

// handleCleanup handles the cleanup command
func (d *Dispatcher) handleCleanup(ctx context.Context, cmd commands.Command) (Result, error) {
	message, err := d.vpnService.CleanupExpiredUsers(ctx)
	if err != nil {
		return Result{}, &apperrors.CommandError{Summary: "Failed to clean up expired users", Err: err}
	}
	if message == "" {
		message = "Expired users cleaned up"
	}
	return reply("✅ " + message), nil
}
