package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"carousel/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Logger() == nil {
		t.Error("Logger() returned nil before configuration")
	}

	time.Sleep(10 * time.Millisecond)
	if up := env.Uptime(); up < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", up)
	}
}

func TestEnvFromContextPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestRedirectStdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = &config.Config{Version: 1}
	env.Log = zap.New(core)

	env.RedirectStdLog()
	log.Print("from std log")
	env.RestoreStdLog()

	if logs.Len() != 1 || logs.All()[0].Message != "from std log" {
		t.Errorf("captured = %v", logs.All())
	}
	// second restore is harmless
	env.RestoreStdLog()
}

func TestRedirectWithoutLogger(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.RedirectStdLog()
	env.RestoreStdLog()
	if env.restoreStdLog != nil {
		t.Error("restore func set without logger")
	}
}
