package services

import (
	"bytes"
	"strings"
	"testing"

	"vpn-tg-admin/internal/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderShareLinks(t *testing.T) {
	svc := NewQRService(newTestLogger())

	codes := svc.RenderShareLinks([]models.ConfigEntry{
		{Key: "link_ws", Value: "vmess://ws"},
		{Key: "link_grpc", Value: "vmess://grpc"},
	})

	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(codes))
	}
	if codes[0].Key != "link_ws" || codes[1].Key != "link_grpc" {
		t.Errorf("expected link order to be kept, got %s, %s", codes[0].Key, codes[1].Key)
	}
	if codes[0].Caption != "📷 link_ws" {
		t.Errorf("unexpected caption %q", codes[0].Caption)
	}
	for _, code := range codes {
		if !bytes.HasPrefix(code.PNG, pngMagic) {
			t.Errorf("%s: expected PNG data", code.Key)
		}
	}
}

func TestRenderShareLinksSkipsOversizedLink(t *testing.T) {
	svc := NewQRService(newTestLogger())

	codes := svc.RenderShareLinks([]models.ConfigEntry{
		{Key: "link_huge", Value: strings.Repeat("a", 5000)},
		{Key: "link_ok", Value: "trojan://ok"},
	})

	if len(codes) != 1 || codes[0].Key != "link_ok" {
		t.Errorf("expected only link_ok to be rendered, got %+v", codes)
	}
}
