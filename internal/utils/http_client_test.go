package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("http://localhost:8000", time.Second)

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Configured(t *testing.T) {
	client := NewHTTPClient("http://localhost:8000", 5*time.Second)

	if client.BaseURL != "http://localhost:8000" {
		t.Errorf("expected base url to be set, got %q", client.BaseURL)
	}
	if got := client.Header.Get("Accept"); got != "application/json" {
		t.Errorf("expected Accept header application/json, got %q", got)
	}
	if client.GetClient().Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", client.GetClient().Timeout)
	}
}

func TestNewHTTPClient_ZeroTimeout(t *testing.T) {
	client := NewHTTPClient("http://localhost:8000", 0)

	if client.GetClient().Timeout != 0 {
		t.Errorf("expected no timeout, got %s", client.GetClient().Timeout)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	// Create two clients and make sure they don't share the same underlying resty.Client
	client1 := NewHTTPClient("http://a", 0)
	client2 := NewHTTPClient("http://b", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}
