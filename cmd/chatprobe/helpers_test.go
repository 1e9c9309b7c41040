package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metalagman/chatprobe"
	"github.com/metalagman/chatprobe/scenario"
)

func overrideEndpoint(t *testing.T, url string) {
	t.Helper()

	old := endpoint
	endpoint = url

	t.Cleanup(func() { endpoint = old })
}

func overrideCleaner(t *testing.T, c scenario.Cleaner) {
	t.Helper()

	old := newCleaner
	newCleaner = func(chatprobe.RedisConfig) (scenario.Cleaner, io.Closer) {
		return c, io.NopCloser(nil)
	}

	t.Cleanup(func() { newCleaner = old })
}

func startChat(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	overrideEndpoint(t, srv.URL)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--env-file="}, args...))

	err := root.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}
