package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// no config file in the test working directory: defaults apply
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3500 {
		t.Fatalf("port = %d, want 3500", cfg.Port)
	}
	if cfg.PongWait != 60*time.Second {
		t.Fatalf("pong_wait = %v, want 60s", cfg.PongWait)
	}
	if cfg.SendBuffer != 32 {
		t.Fatalf("send_buffer = %d, want 32", cfg.SendBuffer)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("redis_addr = %q, want empty (bus disabled by default)", cfg.RedisAddr)
	}
}
