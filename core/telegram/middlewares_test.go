package telegram

import (
	"reflect"
	"testing"

	coreconfig "github.com/m3rciful/taskbot/core/config"
)

func middlewareNames(mws []Middleware) []string {
	names := make([]string, len(mws))
	for i, m := range mws {
		names[i] = m.Name
	}
	return names
}

func TestDefaultMiddlewares(t *testing.T) {
	got := middlewareNames(DefaultMiddlewares(&coreconfig.Config{}, nil))
	if want := []string{"logger", "recover", "metrics"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}

	cfg := &coreconfig.Config{RateLimit: coreconfig.RateLimitConfig{IntervalMS: 500}}
	got = middlewareNames(DefaultMiddlewares(cfg, nil))
	if want := []string{"logger", "recover", "rate_limit", "metrics"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}
}
