package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Protocol is a VPN protocol tag. The backend is authoritative on which tags are valid.
type Protocol string

const (
	ProtocolSSH         Protocol = "ssh"
	ProtocolVmess       Protocol = "vmess"
	ProtocolVless       Protocol = "vless"
	ProtocolTrojan      Protocol = "trojan"
	ProtocolShadowsocks Protocol = "shadowsocks"

	// ProtocolAll selects every protocol when listing users
	ProtocolAll Protocol = "all"
)

// Protocols lists the supported protocols in display order
var Protocols = []Protocol{ProtocolSSH, ProtocolVmess, ProtocolVless, ProtocolTrojan, ProtocolShadowsocks}

// ProtocolDescriptions maps protocols to the labels shown in help text
var ProtocolDescriptions = map[Protocol]string{
	ProtocolSSH:         "SSH/WebSocket",
	ProtocolVmess:       "VMESS",
	ProtocolVless:       "VLESS",
	ProtocolTrojan:      "Trojan",
	ProtocolShadowsocks: "Shadowsocks",
}

// Upper returns the protocol name in upper case
func (p Protocol) Upper() string {
	return strings.ToUpper(string(p))
}

// CreateUserRequest is the body of POST /vpn/{protocol}/create.
// Days is either an int or the raw token the operator typed.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Days     any    `json:"days"`
}

// ExtendUserRequest is the body of PUT /vpn/{protocol}/users/{username}/extend
type ExtendUserRequest struct {
	Days any `json:"days"`
}

// VPNUser is a user record as listed by the backend
type VPNUser struct {
	Username   string     `json:"username"`
	IsActive   bool       `json:"is_active"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Protocol   string     `json:"protocol,omitempty"`
	UUID       string     `json:"uuid,omitempty"`
	Port       Scalar     `json:"port,omitempty"`
}

// Expires reports whether the user has an expiry date
func (u VPNUser) Expires() bool {
	return u.ExpiryDate != nil && !u.ExpiryDate.IsZero()
}

// VPNConfig is the connection configuration returned for a newly created user
type VPNConfig struct {
	Protocol string        `json:"protocol,omitempty"`
	Server   Scalar        `json:"server"`
	Port     Scalar        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password,omitempty"`
	UUID     string        `json:"uuid,omitempty"`
	Config   OrderedConfig `json:"config,omitempty"`
}

// ConfigEntry is a single protocol-specific configuration value
type ConfigEntry struct {
	Key   string
	Value string
}

// OrderedConfig is a JSON object of protocol-specific settings that keeps the backend's key order
type OrderedConfig []ConfigEntry

// UnmarshalJSON implements json.Unmarshaler
func (c *OrderedConfig) UnmarshalJSON(data []byte) error {
	*c = nil
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("config: expected object, got %v", tok)
	}

	entries := OrderedConfig{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("config: unexpected key %v", keyTok)
		}

		var value Scalar
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("config: value for %q: %w", key, err)
		}
		entries = append(entries, ConfigEntry{Key: key, Value: value.String()})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = entries
	return nil
}

// MarshalJSON implements json.Marshaler
func (c OrderedConfig) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ShareLinks returns the entries that hold client share links
func (c OrderedConfig) ShareLinks(prefix string) []ConfigEntry {
	var links []ConfigEntry
	for _, entry := range c {
		if strings.HasPrefix(entry.Key, prefix) && entry.Value != "" {
			links = append(links, entry)
		}
	}
	return links
}
