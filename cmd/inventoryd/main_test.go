package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homeinventory/internal/blob"
	"homeinventory/internal/config"
	"homeinventory/internal/core"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		HTTPAddr:        "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		CORSOrigins:     []string{"*"},
		StorageDriver:   core.StorageMemory,
		BlobDriver:      blob.DriverMemory,
		LogLevel:        "error",
		LogFormat:       "json",
	}
}

func TestCLIRejectsUnknownFlag(t *testing.T) {
	var stderr bytes.Buffer
	if code := cli([]string{"-nope"}, &stderr); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestCLIReportsMissingEnvFile(t *testing.T) {
	var stderr bytes.Buffer
	if code := cli([]string{"-env-file", t.TempDir() + "/missing.env"}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "config") {
		t.Fatalf("expected config error, got %q", stderr.String())
	}
}

func TestBuildAppServesRoutes(t *testing.T) {
	a, err := buildApp(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.close()

	for _, path := range []string{"/healthz", "/api/rooms", "/metrics", "/debug/vars"} {
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}

func TestBuildAppRejectsUnknownStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "floppy"
	if _, err := buildApp(context.Background(), cfg); err == nil {
		t.Fatalf("expected unknown storage driver error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	cfg := testConfig(t)
	cfg.HTTPAddr = addr
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after cancel")
	}
}
