package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSubmissionCounter(t *testing.T) {
	before := testutil.ToFloat64(submissions.WithLabelValues("warehouse", StatusSuccess))
	Submission("warehouse", StatusSuccess)
	after := testutil.ToFloat64(submissions.WithLabelValues("warehouse", StatusSuccess))

	if after-before != 1 {
		t.Errorf("counter moved by %v, want 1", after-before)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	DealerLoad(LoadHit)
	ObserveWrite("sql", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, name := range []string{"visitform_dealer_loads_total", "visitform_backend_write_seconds"} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %s in metrics output", name)
		}
	}
}
