package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vpn-tg-admin/internal/commands"
	"vpn-tg-admin/internal/constants"
	apperrors "vpn-tg-admin/internal/errors"
	"vpn-tg-admin/internal/helpers"
	"vpn-tg-admin/internal/models"
	"vpn-tg-admin/internal/permissions"
	"vpn-tg-admin/internal/services"
	"vpn-tg-admin/pkg/vpnclient"
)

// Action tells the transport whether to answer a message
type Action int

const (
	// NoAction means the message gets no reply at all
	NoAction Action = iota
	// Reply means Result.Reply must be sent back
	Reply
)

// Result is the outcome of dispatching one inbound message
type Result struct {
	Action Action
	Reply  string
	// ShareLinks are client links the transport may additionally render as QR codes
	ShareLinks []models.ConfigEntry
	// QuickActions are buttons the transport may attach to the reply
	QuickActions []QuickAction
}

// QuickAction is a one-tap shortcut for a command. Data comes back verbatim
// through DispatchAction when the button is pressed.
type QuickAction struct {
	Label string
	Data  string
}

// HandlerFunc runs a command whose arity has already been checked
type HandlerFunc func(ctx context.Context, cmd commands.Command) (Result, error)

// Route describes how a command is validated and handled
type Route struct {
	// MinArgs counts the command name itself
	MinArgs int
	Usage   string
	Example string
	Handle  HandlerFunc
}

// Dispatcher turns inbound chat messages into replies
type Dispatcher struct {
	vpnService  *services.VPNService
	gate        *permissions.Gate
	prefix      string
	routes      map[commands.Name]Route
	newPassword func() string
	logger      *logrus.Logger
}

// NewDispatcher creates a dispatcher with the full command table
func NewDispatcher(
	vpnService *services.VPNService,
	gate *permissions.Gate,
	prefix string,
	logger *logrus.Logger,
) *Dispatcher {
	d := &Dispatcher{
		vpnService: vpnService,
		gate:       gate,
		prefix:     prefix,
		newPassword: func() string {
			return helpers.GeneratePassword(constants.GeneratedPasswordLength)
		},
		logger: logger,
	}
	d.routes = d.buildRoutes()
	return d
}

func reply(text string) Result {
	return Result{Action: Reply, Reply: text}
}

// Dispatch processes one inbound message from senderID.
// Unauthorized senders and non-command text yield NoAction; everything else yields exactly one reply.
func (d *Dispatcher) Dispatch(ctx context.Context, senderID, text string) Result {
	if !d.gate.IsAuthorized(senderID) {
		d.gate.ReportDenied(senderID)
		return Result{Action: NoAction}
	}

	cmd, outcome := commands.Parse(text, d.prefix)
	switch outcome {
	case commands.NotACommand:
		return Result{Action: NoAction}
	case commands.Unknown:
		d.logger.Debugf("Unknown command %q from %s", cmd.Token, senderID)
		return reply(d.replyForError(&apperrors.UnknownCommandError{Name: cmd.Token}))
	}

	route, ok := d.routes[cmd.Name]
	if !ok {
		d.logger.Errorf("No route registered for command %q", cmd.Name)
		return reply(d.replyForError(&apperrors.UnknownCommandError{Name: cmd.Token}))
	}

	requestID := uuid.NewString()
	ctx = vpnclient.WithRequestID(ctx, requestID)
	entry := d.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"command":    cmd.Name,
		"sender":     senderID,
	})

	if cmd.Argc() < route.MinArgs {
		entry.Debugf("Rejected command with %d of %d required tokens", cmd.Argc(), route.MinArgs)
		return reply(d.replyForError(d.usageError(cmd.Name, route)))
	}

	entry.Info("Dispatching command")

	res, err := d.invoke(ctx, route, cmd)
	if err != nil {
		entry.Warnf("Command failed: %v", err)
		return reply(d.replyForError(err))
	}

	if res.Action != Reply {
		entry.Error("Handler produced no reply")
		return reply(d.replyForError(errors.New("handler produced no reply")))
	}

	return res
}

// DispatchAction processes a pressed quick action. The action is rewritten to
// the command it stands for and goes through Dispatch like typed text.
func (d *Dispatcher) DispatchAction(ctx context.Context, senderID, data string) Result {
	text, ok := d.actionCommand(data)
	if !ok {
		d.logger.Debugf("Ignoring unknown quick action %q from %s", data, senderID)
		return Result{Action: NoAction}
	}
	return d.Dispatch(ctx, senderID, text)
}

// quickActions returns the list shortcuts offered with the help text
func (d *Dispatcher) quickActions() []QuickAction {
	actions := make([]QuickAction, 0, len(models.Protocols)+1)
	for _, protocol := range models.Protocols {
		actions = append(actions, QuickAction{
			Label: "📋 " + protocol.Upper(),
			Data:  constants.QuickListPrefix + string(protocol),
		})
	}
	return append(actions, QuickAction{
		Label: "📋 All Users",
		Data:  constants.QuickListPrefix + string(models.ProtocolAll),
	})
}

func (d *Dispatcher) actionCommand(data string) (string, bool) {
	target, ok := strings.CutPrefix(data, constants.QuickListPrefix)
	if !ok {
		return "", false
	}
	for _, action := range d.quickActions() {
		if action.Data == data {
			return fmt.Sprintf("%s%s %s", d.prefix, commands.List, target), true
		}
	}
	return "", false
}

// invoke runs the handler, turning a panic into an error
func (d *Dispatcher) invoke(ctx context.Context, route Route, cmd commands.Command) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return route.Handle(ctx, cmd)
}

func (d *Dispatcher) usageError(name commands.Name, route Route) *apperrors.UsageError {
	return &apperrors.UsageError{
		Usage:   strings.TrimSpace(fmt.Sprintf("%s%s %s", d.prefix, name, route.Usage)),
		Example: strings.TrimSpace(fmt.Sprintf("%s%s %s", d.prefix, name, route.Example)),
	}
}

// replyForError renders an error as a chat reply.
// Only backend-provided messages are passed through, never internal error text.
func (d *Dispatcher) replyForError(err error) string {
	var (
		usageErr   *apperrors.UsageError
		unknownErr *apperrors.UnknownCommandError
		cmdErr     *apperrors.CommandError
		backendErr *apperrors.BackendError
	)

	switch {
	case errors.As(err, &usageErr):
		return fmt.Sprintf("❌ Usage: %s\nExample: %s", usageErr.Usage, usageErr.Example)
	case errors.As(err, &unknownErr):
		return fmt.Sprintf("❌ Unknown command. Type %shelp for available commands.", d.prefix)
	case errors.As(err, &cmdErr):
		if errors.As(cmdErr.Err, &backendErr) && backendErr.Message != "" {
			return fmt.Sprintf("❌ %s: %s", cmdErr.Summary, backendErr.Message)
		}
		return "❌ " + cmdErr.Summary
	case errors.As(err, &backendErr) && backendErr.Message != "":
		return "❌ Request failed: " + backendErr.Message
	default:
		return "❌ An error occurred while processing your request."
	}
}
