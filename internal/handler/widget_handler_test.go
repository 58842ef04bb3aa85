package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestShowWorkflowClickActivatesNode(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/workflow/node/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if strings.Contains(body, "<!doctype html>") {
		t.Fatalf("workflow should render a fragment, not a document")
	}
	if !strings.Contains(body, `aria-pressed="true" data-node="1"`) {
		t.Fatalf("expected node 1 active: %s", body)
	}
	if !strings.Contains(body, `hx-get="/widgets/workflow/through/1"`) {
		t.Fatalf("expected scheduled revert: %s", body)
	}
	if !strings.Contains(body, "load delay:1000ms") {
		t.Fatalf("expected one second revert delay")
	}
	if strings.Contains(body, `hx-get="/widgets/workflow/node/1"`) {
		t.Fatalf("active node must not request itself again: %s", body)
	}
	if !strings.Contains(body, `hx-get="/widgets/workflow/node/2"`) {
		t.Fatalf("inactive nodes should stay clickable: %s", body)
	}
}

func TestShowWorkflowInitialState(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/workflow", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, `aria-pressed="true"`) || strings.Contains(body, "hx-trigger") {
		t.Fatalf("initial stepper should be idle: %s", body)
	}
	if got := strings.Count(body, `hx-get="/widgets/workflow/node/`); got != 5 {
		t.Fatalf("expected every node clickable, got %d", got)
	}
}

func TestShowWorkflowRestoreSettles(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/workflow/through/2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, `aria-pressed="true"`) {
		t.Fatalf("restored stepper must have no active node")
	}
	if strings.Contains(body, "hx-trigger") {
		t.Fatalf("restored stepper must not schedule another revert")
	}
	if got := strings.Count(body, " completed\""); got != 3 {
		t.Fatalf("expected 3 completed nodes, got %d", got)
	}
}

func TestShowWorkflowRejectsBadSteps(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	for _, path := range []string{"node/99", "node/-1", "node/abc", "through/-2", "through/x"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/workflow/"+path, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/workflow/through/-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("through/-1 is the reset state, got %d", w.Code)
	}
}

func TestShowProcessVisual(t *testing.T) {
	api := newTestAPI(t)
	router, _ := newTestRouter(api)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/process/reporting", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `data-variant="reporting"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/process/timeline", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown variant, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("unknown variant should render nothing, got %q", w.Body.String())
	}
}
