package permissions

import (
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"vpn-tg-admin/internal/constants"
)

// Gate decides whether a sender may issue commands.
// The allow-list is fixed for the lifetime of the process.
type Gate struct {
	allowed map[string]struct{}
	denied  *cache.Cache
	logger  *logrus.Logger
}

// NewGate creates a gate for the given sender IDs
func NewGate(senderIDs []string, logger *logrus.Logger) *Gate {
	allowed := make(map[string]struct{}, len(senderIDs))
	for _, id := range senderIDs {
		allowed[id] = struct{}{}
	}

	logger.Infof("Initialized authorization gate with %d allowed senders", len(allowed))

	return &Gate{
		allowed: allowed,
		denied:  cache.New(constants.DeniedLogInterval, constants.CacheCleanupInterval),
		logger:  logger,
	}
}

// IsAuthorized reports whether senderID is on the allow-list
func (g *Gate) IsAuthorized(senderID string) bool {
	_, ok := g.allowed[senderID]
	return ok
}

// ReportDenied logs a rejected sender, at most once per DeniedLogInterval.
// It returns true when the attempt was logged.
func (g *Gate) ReportDenied(senderID string) bool {
	if err := g.denied.Add(senderID, struct{}{}, cache.DefaultExpiration); err != nil {
		g.logger.Debugf("Dropped message from unauthorized sender %s", senderID)
		return false
	}
	g.logger.Warnf("Dropped message from unauthorized sender %s", senderID)
	return true
}
