package services

import (
	"errors"
	"testing"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
	"github.com/BillDFrank/Predict-apartment-price-Project/storage"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

// fakeDetailFetcher serves canned detail fields keyed by listing URL.
type fakeDetailFetcher struct {
	details map[string]models.DetailFields
	errs    map[string]error
	calls   []string
}

func (f *fakeDetailFetcher) FetchDetail(url string) (models.DetailFields, error) {
	f.calls = append(f.calls, url)
	if err := f.errs[url]; err != nil {
		return models.DetailFields{}, err
	}
	return f.details[url], nil
}

func newTestBackfiller(f *fakeDetailFetcher, g *fakeGateway) *Backfiller {
	return NewBackfiller(f, g, newTestLogger(), utils.NewPacer(0, 0))
}

func TestBackfillProcessesCandidatesInOrder(t *testing.T) {
	gw := &fakeGateway{pending: []storage.PendingAd{
		{ID: 1, URL: "u1"},
		{ID: 2, URL: "u2"},
		{ID: 3, URL: "u3"},
	}}
	fetcher := &fakeDetailFetcher{details: map[string]models.DetailFields{
		"u1": {Bathrooms: "1", ConstructionYear: "1990", EnergeticCertificate: "C"},
		"u2": {Bathrooms: "2", ConstructionYear: "2001", EnergeticCertificate: "B"},
		"u3": {Bathrooms: "3", ConstructionYear: "2015", EnergeticCertificate: "A"},
	}}

	if err := newTestBackfiller(fetcher, gw).Run("top", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gw.gotOrder != "top" || gw.gotDate != "" {
		t.Errorf("selection got order %q date %q; want top / empty", gw.gotOrder, gw.gotDate)
	}
	if len(gw.updates) != 3 {
		t.Fatalf("got %d updates; want 3", len(gw.updates))
	}
	for i, wantID := range []int64{1, 2, 3} {
		if gw.updates[i].id != wantID {
			t.Errorf("update %d is for id %d; want %d", i, gw.updates[i].id, wantID)
		}
	}
}

func TestBackfillSkipsFailedFetch(t *testing.T) {
	gw := &fakeGateway{pending: []storage.PendingAd{
		{ID: 1, URL: "u1"},
		{ID: 2, URL: "u2"},
	}}
	fetcher := &fakeDetailFetcher{
		details: map[string]models.DetailFields{
			"u2": {Bathrooms: "2", ConstructionYear: "1999", EnergeticCertificate: "B-"},
		},
		errs: map[string]error{"u1": errors.New("status 403")},
	}

	if err := newTestBackfiller(fetcher, gw).Run("top", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gw.updates) != 1 {
		t.Fatalf("got %d updates; want 1 — the failed record stays untouched", len(gw.updates))
	}
	if gw.updates[0].id != 2 {
		t.Errorf("updated id %d; want 2", gw.updates[0].id)
	}
}

func TestBackfillNormalizesBeforeUpdate(t *testing.T) {
	gw := &fakeGateway{pending: []storage.PendingAd{{ID: 42, URL: "u"}}}
	fetcher := &fakeDetailFetcher{details: map[string]models.DetailFields{
		"u": {
			Bathrooms:            "2 banheiros",
			ConstructionYear:     "Ano 1999",
			EnergeticCertificate: "A+ Energy Class Rating",
		},
	}}

	if err := newTestBackfiller(fetcher, gw).Run("top", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gw.updates) != 1 {
		t.Fatalf("got %d updates; want 1", len(gw.updates))
	}

	up := gw.updates[0]
	if up.bathrooms == nil || *up.bathrooms != 2 {
		t.Errorf("bathrooms = %v; want 2", fmtIntPtr(up.bathrooms))
	}
	if up.year == nil || *up.year != 1999 {
		t.Errorf("year = %v; want 1999", fmtIntPtr(up.year))
	}
	if up.cert == nil || *up.cert != "A+ Energy " {
		t.Errorf("cert = %v; want first 10 characters", fmtStrPtr(up.cert))
	}
}

func TestBackfillSentinelsBecomeNull(t *testing.T) {
	gw := &fakeGateway{pending: []storage.PendingAd{{ID: 7, URL: "u"}}}
	fetcher := &fakeDetailFetcher{details: map[string]models.DetailFields{
		"u": {
			Bathrooms:            models.NotAvailable,
			ConstructionYear:     models.NotAvailable,
			EnergeticCertificate: models.NotAvailable,
		},
	}}

	if err := newTestBackfiller(fetcher, gw).Run("top", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gw.updates) != 1 {
		t.Fatalf("got %d updates; want 1", len(gw.updates))
	}

	up := gw.updates[0]
	if up.bathrooms != nil || up.year != nil || up.cert != nil {
		t.Errorf("sentinel fields must persist as nil, got %v/%v/%v",
			fmtIntPtr(up.bathrooms), fmtIntPtr(up.year), fmtStrPtr(up.cert))
	}
}

func TestBackfillUpdateErrorDoesNotAbortLoop(t *testing.T) {
	gw := &fakeGateway{
		pending: []storage.PendingAd{
			{ID: 1, URL: "u1"},
			{ID: 2, URL: "u2"},
		},
		updateErr: map[int64]error{1: errors.New("deadlock detected")},
	}
	fetcher := &fakeDetailFetcher{details: map[string]models.DetailFields{
		"u1": {Bathrooms: "1", ConstructionYear: "1980", EnergeticCertificate: "D"},
		"u2": {Bathrooms: "2", ConstructionYear: "1990", EnergeticCertificate: "C"},
	}}

	if err := newTestBackfiller(fetcher, gw).Run("top", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fetcher.calls) != 2 {
		t.Errorf("fetched %d candidates; want 2", len(fetcher.calls))
	}
	if len(gw.updates) != 1 || gw.updates[0].id != 2 {
		t.Errorf("expected only id 2 to be recorded as updated, got %v", gw.updates)
	}
}

func TestBackfillSelectionErrorFailsRun(t *testing.T) {
	gw := &fakeGateway{pendingErr: errors.New("relation does not exist")}

	if err := newTestBackfiller(&fakeDetailFetcher{}, gw).Run("top", ""); err == nil {
		t.Fatal("expected selection error to fail the run")
	}
}

func TestBackfillPassesDateFilter(t *testing.T) {
	gw := &fakeGateway{}

	if err := newTestBackfiller(&fakeDetailFetcher{}, gw).Run("bottom", "2026-08-31"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.gotOrder != "bottom" {
		t.Errorf("order = %q; want bottom", gw.gotOrder)
	}
	if gw.gotDate != "2026-08-31" {
		t.Errorf("date filter = %q; want 2026-08-31", gw.gotDate)
	}
}
