package services

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterServiceAllowRespectsBurst(t *testing.T) {
	svc := NewRateLimiterService(1, 2)

	if !svc.Allow("relance") {
		t.Fatal("expected first call within burst to be allowed")
	}
	if !svc.Allow("relance") {
		t.Fatal("expected second call within burst to be allowed")
	}
	if svc.Allow("relance") {
		t.Fatal("expected third call to exceed the burst and be refused")
	}
}

func TestRateLimiterServiceKindsAreIndependent(t *testing.T) {
	svc := NewRateLimiterService(1, 1)

	if !svc.Allow("relance") {
		t.Fatal("expected relance's first call to be allowed")
	}
	if !svc.Allow("dpgf_import") {
		t.Fatal("expected dpgf_import to have its own independent bucket")
	}
}

func TestRateLimiterServiceWaitUnblocksAfterRefill(t *testing.T) {
	svc := NewRateLimiterService(1000, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := svc.Wait(ctx, "relance"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}
	if err := svc.Wait(ctx, "relance"); err != nil {
		t.Fatalf("second Wait after refill: %v", err)
	}
}
