package models

import (
	"encoding/json"
)

// APIResponse is the envelope the VPN API wraps every response in
type APIResponse struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the data returned by a successful login.
// ExpiresAt is informational and kept in whatever form the backend sends.
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt Scalar `json:"expires_at"`
}

// ServiceStatus reports which VPN-related services are running
type ServiceStatus struct {
	SSH          bool `json:"ssh"`
	Nginx        bool `json:"nginx"`
	Xray         bool `json:"xray"`
	Dropbear     bool `json:"dropbear"`
	Stunnel      bool `json:"stunnel"`
	SSHWebSocket bool `json:"ssh_websocket"`
}

// SystemInfo describes the VPN host
type SystemInfo struct {
	OS               Scalar `json:"os"`
	Kernel           Scalar `json:"kernel"`
	CPUName          Scalar `json:"cpu_name"`
	CPUCores         Scalar `json:"cpu_cores"`
	CPUUsage         Scalar `json:"cpu_usage"`
	RAMUsed          Scalar `json:"ram_used_mb"`
	RAMTotal         Scalar `json:"ram_total_mb"`
	RAMUsage         Scalar `json:"ram_usage_percent"`
	Uptime           Scalar `json:"uptime"`
	Domain           Scalar `json:"domain"`
	IP               Scalar `json:"ip"`
	DailyBandwidth   Scalar `json:"daily_bandwidth"`
	MonthlyBandwidth Scalar `json:"monthly_bandwidth"`
}

// Bandwidth holds the host's bandwidth counters
type Bandwidth struct {
	Daily   Scalar `json:"daily"`
	Monthly Scalar `json:"monthly"`
}

// UserTraffic holds a user's traffic counters
type UserTraffic struct {
	Username string `json:"username"`
	Upload   Scalar `json:"upload"`
	Download Scalar `json:"download"`
	Total    Scalar `json:"total"`
}

// Scalar keeps a JSON scalar exactly as the backend rendered it.
// Strings are unquoted, numbers and booleans keep their literal text, null is empty.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	*s = Scalar(data)
	return nil
}

// String returns the value as received
func (s Scalar) String() string {
	return string(s)
}
