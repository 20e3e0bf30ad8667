package helpers

import (
	"fmt"
	"sort"
	"strings"

	"vpn-tg-admin/internal/constants"
	"vpn-tg-admin/internal/models"
)

const (
	markOK   = "✅"
	markFail = "❌"
)

func mark(ok bool) string {
	if ok {
		return markOK
	}
	return markFail
}

// FormatStatus formats the service status report
func FormatStatus(status *models.ServiceStatus) string {
	var sb strings.Builder
	sb.WriteString("🖥️ System Status\n\n")
	sb.WriteString(fmt.Sprintf("🔐 SSH: %s\n", mark(status.SSH)))
	sb.WriteString(fmt.Sprintf("🌐 Nginx: %s\n", mark(status.Nginx)))
	sb.WriteString(fmt.Sprintf("⚡ Xray: %s\n", mark(status.Xray)))
	sb.WriteString(fmt.Sprintf("🔒 Dropbear: %s\n", mark(status.Dropbear)))
	sb.WriteString(fmt.Sprintf("🔐 Stunnel: %s\n", mark(status.Stunnel)))
	sb.WriteString(fmt.Sprintf("🌐 SSH-WS: %s", mark(status.SSHWebSocket)))
	return sb.String()
}

// FormatServerInfo formats the server information report.
// Values are shown exactly as the backend sent them.
func FormatServerInfo(info *models.SystemInfo) string {
	var sb strings.Builder
	sb.WriteString("🖥️ Server Information\n\n")
	sb.WriteString(fmt.Sprintf("💻 OS: %s\n", info.OS))
	sb.WriteString(fmt.Sprintf("🔧 Kernel: %s\n", info.Kernel))
	sb.WriteString(fmt.Sprintf("⚡ CPU: %s\n", info.CPUName))
	sb.WriteString(fmt.Sprintf("🧠 Cores: %s\n", info.CPUCores))
	sb.WriteString(fmt.Sprintf("📊 CPU Usage: %s\n", info.CPUUsage))
	sb.WriteString(fmt.Sprintf("💾 RAM: %sMB / %sMB (%s)\n", info.RAMUsed, info.RAMTotal, info.RAMUsage))
	sb.WriteString(fmt.Sprintf("⏰ Uptime: %s\n", info.Uptime))
	sb.WriteString(fmt.Sprintf("🌐 Domain: %s\n", info.Domain))
	sb.WriteString(fmt.Sprintf("📍 IP: %s\n", info.IP))
	sb.WriteString(fmt.Sprintf("📈 Daily Bandwidth: %s\n", info.DailyBandwidth))
	sb.WriteString(fmt.Sprintf("📊 Monthly Bandwidth: %s", info.MonthlyBandwidth))
	return sb.String()
}

// FormatBandwidth formats the bandwidth counters
func FormatBandwidth(bandwidth *models.Bandwidth) string {
	var sb strings.Builder
	sb.WriteString("📈 Bandwidth Usage\n\n")
	sb.WriteString(fmt.Sprintf("📅 Daily: %s\n", bandwidth.Daily))
	sb.WriteString(fmt.Sprintf("🗓️ Monthly: %s", bandwidth.Monthly))
	return sb.String()
}

// FormatTraffic formats a user's traffic counters
func FormatTraffic(username string, traffic *models.UserTraffic) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Traffic Usage for %s\n\n", username))
	sb.WriteString(fmt.Sprintf("⬆️ Upload: %s\n", traffic.Upload))
	sb.WriteString(fmt.Sprintf("⬇️ Download: %s\n", traffic.Download))
	sb.WriteString(fmt.Sprintf("📈 Total: %s", traffic.Total))
	return sb.String()
}

// FormatVPNConfig formats the configuration of a newly created user.
// Extra config entries keep the order the backend sent them in.
func FormatVPNConfig(protocol models.Protocol, cfg *models.VPNConfig) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Protocol: %s\n", protocol.Upper()))
	sb.WriteString(fmt.Sprintf("Server: %s\n", cfg.Server))
	sb.WriteString(fmt.Sprintf("Port: %s\n", cfg.Port))
	sb.WriteString(fmt.Sprintf("Username: %s\n", cfg.Username))

	if cfg.Password != "" {
		sb.WriteString(fmt.Sprintf("Password: %s\n", cfg.Password))
	}
	if cfg.UUID != "" {
		sb.WriteString(fmt.Sprintf("UUID: %s\n", cfg.UUID))
	}

	if len(cfg.Config) > 0 {
		sb.WriteString("\nAdditional Config:\n")
		for _, entry := range cfg.Config {
			sb.WriteString(fmt.Sprintf("%s: %s\n", entry.Key, entry.Value))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatUserList formats the users of one protocol, numbered from 1
func FormatUserList(protocol models.Protocol, users []models.VPNUser) string {
	if len(users) == 0 {
		return fmt.Sprintf("No %s users found.", protocol)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 %s Users:\n\n", protocol.Upper()))
	writeUserLines(&sb, users)
	return strings.TrimRight(sb.String(), "\n")
}

// FormatAllUsers formats users grouped by protocol.
// Known protocols come first in their canonical order, anything else follows alphabetically.
func FormatAllUsers(users map[string][]models.VPNUser) string {
	var sb strings.Builder
	sb.WriteString("📋 All Users:\n")

	for _, protocol := range orderedProtocols(users) {
		sb.WriteString(fmt.Sprintf("\n%s:\n", models.Protocol(protocol).Upper()))
		if len(users[protocol]) == 0 {
			sb.WriteString("No users found\n")
			continue
		}
		writeUserLines(&sb, users[protocol])
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeUserLines(sb *strings.Builder, users []models.VPNUser) {
	for i, user := range users {
		expiry := "Never"
		if user.Expires() {
			expiry = user.ExpiryDate.Format(constants.DateFormat)
		}
		sb.WriteString(fmt.Sprintf("%d. %s %s (Expires: %s)\n", i+1, mark(user.IsActive), user.Username, expiry))
	}
}

func orderedProtocols(users map[string][]models.VPNUser) []string {
	ordered := make([]string, 0, len(users))
	seen := make(map[string]bool, len(users))

	for _, protocol := range models.Protocols {
		if _, ok := users[string(protocol)]; ok {
			ordered = append(ordered, string(protocol))
			seen[string(protocol)] = true
		}
	}

	var extra []string
	for protocol := range users {
		if !seen[protocol] {
			extra = append(extra, protocol)
		}
	}
	sort.Strings(extra)

	return append(ordered, extra...)
}
