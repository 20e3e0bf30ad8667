package helpers

import (
	"fmt"
	"strings"

	"vpn-tg-admin/internal/models"
)

// FormatHelp formats the command reference for the given command prefix
func FormatHelp(prefix string) string {
	var sb strings.Builder
	sb.WriteString("🤖 VPN Bot Commands\n\n")

	sb.WriteString("📊 System Commands:\n")
	sb.WriteString(fmt.Sprintf("%sstatus - Check service status\n", prefix))
	sb.WriteString(fmt.Sprintf("%sinfo - Get server information\n", prefix))
	sb.WriteString(fmt.Sprintf("%sbandwidth - Get bandwidth usage\n", prefix))
	sb.WriteString(fmt.Sprintf("%srestart - Restart VPN services\n\n", prefix))

	sb.WriteString("👥 User Management:\n")
	sb.WriteString(fmt.Sprintf("%screate <protocol> <username> <days> - Create VPN user\n", prefix))
	sb.WriteString(fmt.Sprintf("%slist <protocol|all> - List users by protocol\n", prefix))
	sb.WriteString(fmt.Sprintf("%sdelete <protocol> <username> - Delete user\n", prefix))
	sb.WriteString(fmt.Sprintf("%sextend <protocol> <username> <days> - Extend user\n", prefix))
	sb.WriteString(fmt.Sprintf("%straffic <username> - Get user traffic\n", prefix))
	sb.WriteString(fmt.Sprintf("%scleanup - Remove expired users\n\n", prefix))

	sb.WriteString("📋 Supported Protocols:\n")
	for _, protocol := range models.Protocols {
		sb.WriteString(fmt.Sprintf("• %s - %s\n", protocol, models.ProtocolDescriptions[protocol]))
	}

	sb.WriteString("\n💡 Examples:\n")
	sb.WriteString(fmt.Sprintf("%screate ssh john 30\n", prefix))
	sb.WriteString(fmt.Sprintf("%slist vmess\n", prefix))
	sb.WriteString(fmt.Sprintf("%sdelete ssh john\n", prefix))
	sb.WriteString(fmt.Sprintf("%sextend vless alice 15", prefix))

	return sb.String()
}
