package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
)

type fakeRateService struct {
	rate decimal.Decimal
	set  *decimal.Decimal
	err  error
}

func (f *fakeRateService) CommissionRate(ctx context.Context) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.rate, nil
}

func (f *fakeRateService) SetCommissionRate(ctx context.Context, rate decimal.Decimal) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	f.set = &rate
	f.rate = rate
	return rate, nil
}

func TestAdminGetCommissionRate(t *testing.T) {
	service := &fakeRateService{rate: decimal.NewFromInt(10)}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/commission-rate", nil)
	rec := httptest.NewRecorder()
	AdminGetCommissionRate(service, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"rate":"10"`) {
		t.Fatalf("body missing rate: %s", rec.Body.String())
	}
}

func TestAdminSetCommissionRate(t *testing.T) {
	service := &fakeRateService{rate: decimal.NewFromInt(10)}

	req := httptest.NewRequest(http.MethodPut, "/api/admin/v1/commission-rate", strings.NewReader(`{"rate":12.5}`))
	rec := httptest.NewRecorder()
	AdminSetCommissionRate(service, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if service.set == nil || !service.set.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("rate not stored: %v", service.set)
	}
	if !strings.Contains(rec.Body.String(), `"rate":"12.5"`) {
		t.Fatalf("body missing applied rate: %s", rec.Body.String())
	}
}

func TestAdminSetCommissionRate_MissingRate(t *testing.T) {
	service := &fakeRateService{}

	req := httptest.NewRequest(http.MethodPut, "/api/admin/v1/commission-rate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	AdminSetCommissionRate(service, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if service.set != nil {
		t.Fatal("rate must not change on invalid body")
	}
}

func TestAdminSetCommissionRate_StorageError(t *testing.T) {
	service := &fakeRateService{err: pkgerrors.New(pkgerrors.CodeDependency, "upsert setting")}

	req := httptest.NewRequest(http.MethodPut, "/api/admin/v1/commission-rate", strings.NewReader(`{"rate":15}`))
	rec := httptest.NewRecorder()
	AdminSetCommissionRate(service, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
