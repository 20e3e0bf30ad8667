package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"vpn-tg-admin/internal/models"
	"vpn-tg-admin/pkg/vpnclient"
)

// VPNService exposes the VPN API operations used by the bot.
// Each method performs exactly one backend call.
type VPNService struct {
	client *vpnclient.Client
	logger *logrus.Logger
}

// NewVPNService creates a new VPN service
func NewVPNService(client *vpnclient.Client, logger *logrus.Logger) *VPNService {
	return &VPNService{
		client: client,
		logger: logger,
	}
}

// GetServiceStatus gets the status of the VPN services
func (s *VPNService) GetServiceStatus(ctx context.Context) (*models.ServiceStatus, error) {
	var status models.ServiceStatus
	if err := s.client.Request(ctx, http.MethodGet, "/system/status", nil).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetSystemInfo gets information about the VPN host
func (s *VPNService) GetSystemInfo(ctx context.Context) (*models.SystemInfo, error) {
	var info models.SystemInfo
	if err := s.client.Request(ctx, http.MethodGet, "/system/info", nil).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBandwidth gets the host's bandwidth counters
func (s *VPNService) GetBandwidth(ctx context.Context) (*models.Bandwidth, error) {
	var bandwidth models.Bandwidth
	if err := s.client.Request(ctx, http.MethodGet, "/system/bandwidth", nil).Decode(&bandwidth); err != nil {
		return nil, err
	}
	return &bandwidth, nil
}

// RestartServices restarts the VPN services and returns the backend's message
func (s *VPNService) RestartServices(ctx context.Context) (string, error) {
	res := s.client.Request(ctx, http.MethodPost, "/system/restart", nil)
	if !res.OK() {
		return "", res.Err()
	}
	return res.Message(), nil
}

// CreateUser creates a VPN user and returns its connection configuration
func (s *VPNService) CreateUser(ctx context.Context, protocol models.Protocol, username, password string, days any) (*models.VPNConfig, error) {
	s.logger.Infof("Creating %s user %s", protocol, username)

	body := models.CreateUserRequest{
		Username: username,
		Password: password,
		Days:     days,
	}

	var cfg models.VPNConfig
	if err := s.client.Request(ctx, http.MethodPost, protocolPath(protocol, "create"), body).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ListUsers lists the users of a protocol
func (s *VPNService) ListUsers(ctx context.Context, protocol models.Protocol) ([]models.VPNUser, error) {
	var users []models.VPNUser
	if err := s.client.Request(ctx, http.MethodGet, protocolPath(protocol, "users"), nil).Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAllUsers lists the users of every protocol, keyed by protocol
func (s *VPNService) ListAllUsers(ctx context.Context) (map[string][]models.VPNUser, error) {
	var users map[string][]models.VPNUser
	if err := s.client.Request(ctx, http.MethodGet, "/vpn/users/all", nil).Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser deletes a VPN user
func (s *VPNService) DeleteUser(ctx context.Context, protocol models.Protocol, username string) error {
	s.logger.Infof("Deleting %s user %s", protocol, username)
	return s.client.Request(ctx, http.MethodDelete, userPath(protocol, username), nil).Err()
}

// ExtendUser extends a VPN user's expiry by days
func (s *VPNService) ExtendUser(ctx context.Context, protocol models.Protocol, username string, days any) error {
	s.logger.Infof("Extending %s user %s by %v days", protocol, username, days)
	body := models.ExtendUserRequest{Days: days}
	return s.client.Request(ctx, http.MethodPut, userPath(protocol, username)+"/extend", body).Err()
}

// GetUserTraffic gets a user's traffic counters
func (s *VPNService) GetUserTraffic(ctx context.Context, username string) (*models.UserTraffic, error) {
	var traffic models.UserTraffic
	path := fmt.Sprintf("/vpn/users/%s/traffic", url.PathEscape(username))
	if err := s.client.Request(ctx, http.MethodGet, path, nil).Decode(&traffic); err != nil {
		return nil, err
	}
	return &traffic, nil
}

// CleanupExpiredUsers removes expired users and returns the backend's message
func (s *VPNService) CleanupExpiredUsers(ctx context.Context) (string, error) {
	res := s.client.Request(ctx, http.MethodPost, "/vpn/users/cleanup-expired", nil)
	if !res.OK() {
		return "", res.Err()
	}
	return res.Message(), nil
}

func protocolPath(protocol models.Protocol, action string) string {
	return fmt.Sprintf("/vpn/%s/%s", url.PathEscape(string(protocol)), action)
}

func userPath(protocol models.Protocol, username string) string {
	return fmt.Sprintf("/vpn/%s/users/%s", url.PathEscape(string(protocol)), url.PathEscape(username))
}
