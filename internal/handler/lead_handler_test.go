package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/theprojectseo/internal/db"
)

func postLeadForm(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validLeadForm() url.Values {
	return url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"email":       {"Ada@Example.com"},
		"company":     {"Analytical Engines"},
		"sourcePage":  {"/contact"},
		"formVariant": {"full"},
		"utmSource":   {"newsletter"},
	}
}

func TestSubmitLeadStoresAndThanks(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	w := postLeadForm(router, validLeadForm())
	api.Leads().Wait()

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "form-success") {
		t.Fatalf("expected thank-you fragment, got %s", w.Body.String())
	}

	var leads []db.Lead
	if err := api.db.Find(&leads).Error; err != nil {
		t.Fatalf("failed to load leads: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
	lead := leads[0]
	if lead.Email != "ada@example.com" || lead.Status != db.LeadStatusNew || lead.UTMSource != "newsletter" {
		t.Fatalf("unexpected lead %+v", lead)
	}
}

func TestSubmitLeadReportsFirstError(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	cases := []struct {
		field string
		value string
		want  string
	}{
		{"firstName", "", "First name is required"},
		{"lastName", "", "Last name is required"},
		{"email", "not-an-email", "Valid email is required"},
	}
	for _, tc := range cases {
		form := validLeadForm()
		form.Set(tc.field, tc.value)

		w := postLeadForm(router, form)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.field, w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, tc.want) {
			t.Fatalf("%s: expected %q in %s", tc.field, tc.want, body)
		}
		if !strings.Contains(body, `id="lead-form"`) {
			t.Fatalf("%s: expected the form to be re-rendered", tc.field)
		}
	}

	var count int64
	api.db.Model(&db.Lead{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid submissions must not be stored, got %d", count)
	}
}

func TestSubmitLeadWithoutSourcePage(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	form := validLeadForm()
	form.Del("sourcePage")
	w := postLeadForm(router, form)
	api.Leads().Wait()

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var lead db.Lead
	if err := api.db.First(&lead).Error; err != nil {
		t.Fatalf("failed to load lead: %v", err)
	}
	if lead.SourcePage != "" {
		t.Fatalf("expected empty source page, got %q", lead.SourcePage)
	}
}

func TestSubmitLeadKeepsEnteredValues(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	form := validLeadForm()
	form.Set("lastName", "")
	w := postLeadForm(router, form)

	body := w.Body.String()
	if !strings.Contains(body, `value="Ada"`) {
		t.Fatalf("expected first name to be kept: %s", body)
	}
	if !strings.Contains(body, `name="formVariant" value="full"`) {
		t.Fatalf("expected variant to be kept")
	}
}

func TestSubmitLeadJSON(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	payload := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","sourcePage":"/pricing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	api.Leads().Wait()

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"firstName":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Last name is required"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
