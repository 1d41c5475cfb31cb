package redis

import (
	"testing"
	"time"

	"github.com/Alijeyrad/dentclinic/config"
)

func TestFromCentralConfigDefaults(t *testing.T) {
	got := FromCentralConfig(config.RedisConfig{Addr: "cache:6379", ReadTimeoutSeconds: 7})

	if got.Addr != "cache:6379" {
		t.Errorf("Addr = %q", got.Addr)
	}
	if got.PoolSize != 10 || got.MinIdleConns != 2 {
		t.Errorf("pool = %d/%d, want defaults 10/2", got.PoolSize, got.MinIdleConns)
	}
	if got.ReadTimeout != 7*time.Second {
		t.Errorf("ReadTimeout = %v, want 7s", got.ReadTimeout)
	}
	if got.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v, want default 5s", got.DialTimeout)
	}
}
