package config

import "testing"

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
}

func TestLoadServerConfigPortForms(t *testing.T) {
	cases := []struct {
		port string
		want string
	}{
		{"9090", ":9090"},
		{":9090", ":9090"},
		{"127.0.0.1:9090", "127.0.0.1:9090"},
	}
	for _, tc := range cases {
		t.Setenv("PORT", tc.port)
		cfg, err := loadServerConfig()
		if err != nil {
			t.Fatalf("PORT=%q: %v", tc.port, err)
		}
		if cfg.Addr != tc.want {
			t.Fatalf("PORT=%q: got %q want %q", tc.port, cfg.Addr, tc.want)
		}
	}
}

func TestLoadServerConfigRejectsSpaces(t *testing.T) {
	t.Setenv("PORT", "80 80")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestLoadStoreConfigDefaults(t *testing.T) {
	t.Setenv("CHATBOT_STORE", "")
	t.Setenv("CHATBOT_STATE_DIR", "")
	t.Setenv("CHATBOT_REDIS_DB", "")

	cfg, err := loadStoreConfig()
	if err != nil {
		t.Fatalf("loadStoreConfig: %v", err)
	}
	if cfg.Backend != StoreFile {
		t.Fatalf("default backend %q", cfg.Backend)
	}
	if cfg.Dir != ".chatbot" {
		t.Fatalf("default dir %q", cfg.Dir)
	}
}

func TestLoadStoreConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CHATBOT_STORE", "etcd")
	if _, err := loadStoreConfig(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadStoreConfigRedis(t *testing.T) {
	t.Setenv("CHATBOT_STORE", "redis")
	t.Setenv("CHATBOT_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("CHATBOT_REDIS_DB", "3")

	cfg, err := loadStoreConfig()
	if err != nil {
		t.Fatalf("loadStoreConfig: %v", err)
	}
	if cfg.Backend != StoreRedis || cfg.RedisAddr != "redis.internal:6380" || cfg.RedisDB != 3 {
		t.Fatalf("unexpected redis config: %+v", cfg)
	}
}

func TestLoadLogConfig(t *testing.T) {
	t.Setenv("CHATBOT_LOG_LEVEL", "debug")
	t.Setenv("CHATBOT_LOG_PRETTY", "true")

	cfg, err := loadLogConfig()
	if err != nil {
		t.Fatalf("loadLogConfig: %v", err)
	}
	if cfg.Level != "debug" || !cfg.Pretty {
		t.Fatalf("unexpected log config: %+v", cfg)
	}

	t.Setenv("CHATBOT_LOG_PRETTY", "sometimes")
	if _, err := loadLogConfig(); err == nil {
		t.Fatal("expected error for invalid bool")
	}
}

func TestArkConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  ArkConfig
		want bool
	}{
		{"empty", ArkConfig{}, false},
		{"model only", ArkConfig{Model: "m"}, false},
		{"api key", ArkConfig{Model: "m", APIKey: "k"}, true},
		{"ak only", ArkConfig{Model: "m", AccessKey: "a"}, false},
		{"ak sk pair", ArkConfig{Model: "m", AccessKey: "a", SecretKey: "s"}, true},
	}
	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseOptionalIntEnv(t *testing.T) {
	t.Setenv("CHATBOT_TEST_INT", "42")
	val, err := parseOptionalIntEnv("CHATBOT_TEST_INT")
	if err != nil || val == nil || *val != 42 {
		t.Fatalf("got %v err %v", val, err)
	}

	t.Setenv("CHATBOT_TEST_INT", "  ")
	val, err = parseOptionalIntEnv("CHATBOT_TEST_INT")
	if err != nil || val != nil {
		t.Fatalf("blank value: got %v err %v", val, err)
	}

	t.Setenv("CHATBOT_TEST_INT", "many")
	if _, err := parseOptionalIntEnv("CHATBOT_TEST_INT"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}
