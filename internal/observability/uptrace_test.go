package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/finalpoint-client/internal/config"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cases := []config.Config{
		{UptraceEnabled: false, ServiceName: "finalpoint-client", ServiceVersion: "dev", AppEnv: config.EnvDev},
		{UptraceEnabled: true, UptraceDSN: " ", ServiceName: "finalpoint-client", AppEnv: config.EnvDev},
	}
	for _, cfg := range cases {
		shutdown, err := InitUptrace(cfg, logging.NewNop())
		if err != nil {
			t.Fatalf("init uptrace: %v", err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown uptrace: %v", err)
		}
	}
}
