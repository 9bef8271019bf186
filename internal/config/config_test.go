package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Unmarshal(v)
	if err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	if cfg.Storage.SlotKey != "trafficSubmissions" {
		t.Fatalf("unexpected slot key: %s", cfg.Storage.SlotKey)
	}
	if cfg.Upload.MaxImages != 3 {
		t.Fatalf("max images want 3 got %d", cfg.Upload.MaxImages)
	}
	if cfg.Notice.DismissAfter() != 3*time.Second {
		t.Fatalf("dismiss interval want 3s got %s", cfg.Notice.DismissAfter())
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr())
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	yml := `
storage:
  backend: file
  file_dir: /tmp/qingjiang
notice:
  dismiss_seconds: 5
`
	if err := v.ReadConfig(strings.NewReader(yml)); err != nil {
		t.Fatalf("read yaml failed: %v", err)
	}
	cfg, err := Unmarshal(v)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.FileDir != "/tmp/qingjiang" {
		t.Fatalf("storage override not applied: %+v", cfg.Storage)
	}
	if cfg.Storage.SlotKey != "trafficSubmissions" {
		t.Fatalf("slot key default should survive partial override, got %s", cfg.Storage.SlotKey)
	}
	if cfg.Notice.DismissAfter() != 5*time.Second {
		t.Fatalf("dismiss interval want 5s got %s", cfg.Notice.DismissAfter())
	}
}

func TestNoticeDismissFallback(t *testing.T) {
	if got := (NoticeConfig{}).DismissAfter(); got != 3*time.Second {
		t.Fatalf("zero config should fall back to 3s, got %s", got)
	}
}

func TestLocationFallback(t *testing.T) {
	if loc := (AppConfig{Timezone: "Not/AZone"}).Location(); loc != time.Local {
		t.Fatalf("invalid timezone should fall back to local, got %v", loc)
	}
	if loc := (AppConfig{}).Location(); loc != time.Local {
		t.Fatalf("empty timezone should fall back to local, got %v", loc)
	}
}
