package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"vpn-tg-admin/internal/constants"
	"vpn-tg-admin/internal/models"
)

// ShareCode is the QR rendering of one client share link
type ShareCode struct {
	Key     string
	Caption string
	PNG     []byte
}

// QRService renders client share links as QR codes
type QRService struct {
	size   int
	level  qrcode.RecoveryLevel
	logger *logrus.Logger
}

// NewQRService creates a QR service producing QRSize PNGs at medium recovery
func NewQRService(logger *logrus.Logger) *QRService {
	return &QRService{
		size:   constants.QRSize,
		level:  qrcode.Medium,
		logger: logger,
	}
}

// RenderShareLinks renders each link in order.
// A link that cannot be encoded is logged and left out.
func (s *QRService) RenderShareLinks(links []models.ConfigEntry) []ShareCode {
	codes := make([]ShareCode, 0, len(links))
	for _, link := range links {
		png, err := s.encode(link.Value)
		if err != nil {
			s.logger.Warnf("Skipping QR code for %s: %v", link.Key, err)
			continue
		}
		codes = append(codes, ShareCode{
			Key:     link.Key,
			Caption: fmt.Sprintf(constants.ShareLinkCaption, link.Key),
			PNG:     png,
		})
	}
	return codes
}

func (s *QRService) encode(text string) ([]byte, error) {
	qr, err := qrcode.New(text, s.level)
	if err != nil {
		return nil, err
	}
	return qr.PNG(s.size)
}
