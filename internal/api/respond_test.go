package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"

	devisErrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

func TestWriteErrorMapsDomainErrorToItsStatus(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, devisErrors.DevisNotFound(42))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["code"] != "DevisNotFoundError" {
		t.Fatalf("expected DevisNotFoundError code, got %q", body["code"])
	}
}

func TestWriteErrorFallsBackTo500OnPlainError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, errors.New("boom"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestIdParamParsesMuxVar(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/devis/42", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "42"})

	id, err := idParam(r, "id")
	if err != nil {
		t.Fatalf("idParam: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
}

func TestIdParamRejectsNonNumeric(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/devis/abc", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "abc"})

	if _, err := idParam(r, "id"); err == nil {
		t.Fatal("expected a parse error for a non-numeric id")
	}
}

func TestQueryIntFallsBackToDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/devis?limit=20", nil)
	if got := queryInt(r, "limit", 50); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := queryInt(r, "offset", 50); got != 50 {
		t.Fatalf("expected default 50, got %d", got)
	}

	r2 := httptest.NewRequest(http.MethodGet, "/devis?limit=notanumber", nil)
	if got := queryInt(r2, "limit", 50); got != 50 {
		t.Fatalf("expected default 50 on unparseable value, got %d", got)
	}
}

func TestQueryIntIgnoresOtherQueryParams(t *testing.T) {
	r := &http.Request{URL: &url.URL{RawQuery: "foo=1"}}
	if got := queryInt(r, "bar", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
}
