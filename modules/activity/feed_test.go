package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/condo-marketplace/events"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("e%d", n)
	}
}

func TestFeed_RecentIsNewestFirst(t *testing.T) {
	f := NewFeed(10, counterIDs())
	now := time.Now()
	for i := 0; i < 3; i++ {
		f.Append("kind", fmt.Sprintf("s%d", i), "msg", now)
	}

	got := f.Recent(0)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Subject != "s2" || got[2].Subject != "s0" {
		t.Errorf("expected newest first, got %v, %v", got[0].Subject, got[2].Subject)
	}

	if got := f.Recent(2); len(got) != 2 || got[0].Subject != "s2" {
		t.Errorf("Recent(2) = %+v", got)
	}
}

func TestFeed_DropsOldestAtCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		appends  int
		wantLen  int
		wantLast string
	}{
		{name: "under capacity", capacity: 5, appends: 3, wantLen: 3, wantLast: "s0"},
		{name: "at capacity", capacity: 3, appends: 3, wantLen: 3, wantLast: "s0"},
		{name: "over capacity", capacity: 3, appends: 7, wantLen: 3, wantLast: "s4"},
		{name: "default capacity", capacity: 0, appends: DefaultCapacity + 1, wantLen: DefaultCapacity, wantLast: "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFeed(tt.capacity, counterIDs())
			for i := 0; i < tt.appends; i++ {
				f.Append("kind", fmt.Sprintf("s%d", i), "", time.Now())
			}
			got := f.Recent(0)
			if len(got) != tt.wantLen {
				t.Fatalf("expected %d entries, got %d", tt.wantLen, len(got))
			}
			if oldest := got[len(got)-1].Subject; oldest != tt.wantLast {
				t.Errorf("expected oldest %q, got %q", tt.wantLast, oldest)
			}
		})
	}
}

func TestModule_HandlersRecordEntries(t *testing.T) {
	m := NewModule(10)
	ctx := context.Background()
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	_ = m.handleProductListed(ctx, events.ProductListedEvent{
		ProductID: "p1", Title: "Leather Sofa", Category: "sale", OwnerName: "Maria", OwnerApartment: "Apt 301", ListedAt: at,
	}, nil)
	_ = m.handleProductStatus(ctx, events.ProductStatusChangedEvent{ProductID: "p1", Title: "Leather Sofa", Status: "reserved", ChangedAt: at}, nil)
	_ = m.handleResidentRegistered(ctx, events.ResidentEvent{ResidentID: "r1", Name: "Joao", Apartment: "Apt 205", At: at}, nil)

	resp, err := m.listActivity(ctx, ListRequest{Limit: 2}, nil)
	if err != nil {
		t.Fatalf("listActivity() error = %v", err)
	}
	if resp.Total != 3 || len(resp.Entries) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Entries[0].Kind != "resident_registered" || resp.Entries[1].Kind != "product_reserved" {
		t.Errorf("unexpected kinds %q, %q", resp.Entries[0].Kind, resp.Entries[1].Kind)
	}
	if resp.Entries[0].ID == "" {
		t.Error("expected entries to carry an id")
	}
}
