package prometheus

import (
	"testing"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounter(t *testing.T) {
	reg := stdprometheus.NewPedanticRegistry()
	c := NewCounterFrom(reg, stdprometheus.CounterOpts{
		Namespace: "kitrun",
		Subsystem: "loop",
		Name:      "timers_fired_total",
		Help:      "Timers fired.",
	}, []string{"kind"})

	c.With("kind", "timeout").Add(1)
	c.With("kind", "interval").Add(2)
	c.With("kind", "interval").Add(3)

	if want, have := 1.0, testutil.ToFloat64(c.cv.WithLabelValues("timeout")); want != have {
		t.Errorf("timeout: want %v, have %v", want, have)
	}
	if want, have := 5.0, testutil.ToFloat64(c.cv.WithLabelValues("interval")); want != have {
		t.Errorf("interval: want %v, have %v", want, have)
	}
}

func TestGauge(t *testing.T) {
	reg := stdprometheus.NewPedanticRegistry()
	g := NewGaugeFrom(reg, stdprometheus.GaugeOpts{
		Namespace: "kitrun",
		Subsystem: "loop",
		Name:      "pending",
		Help:      "Pending work.",
	}, []string{})

	g.Set(3)
	g.Add(-1)
	if want, have := 2.0, testutil.ToFloat64(g.gv.WithLabelValues()); want != have {
		t.Errorf("want %v, have %v", want, have)
	}
}

func TestHistogram(t *testing.T) {
	reg := stdprometheus.NewPedanticRegistry()
	h := NewHistogramFrom(reg, stdprometheus.HistogramOpts{
		Namespace: "kitrun",
		Subsystem: "fetch",
		Name:      "duration_seconds",
		Help:      "Fetch latency.",
	}, []string{"status"})

	h.With("status", "200").Observe(0.25)
	h.With("status", "200").Observe(0.5)

	if want, have := 1, testutil.CollectAndCount(h.hv); want != have {
		t.Errorf("want %d series, have %d", want, have)
	}
}

func TestMissingLabelValue(t *testing.T) {
	reg := stdprometheus.NewPedanticRegistry()
	c := NewCounterFrom(reg, stdprometheus.CounterOpts{Name: "odd_labels_total", Help: "x"}, []string{"kind"})
	c.With("kind").Add(1)
	if want, have := 1.0, testutil.ToFloat64(c.cv.WithLabelValues("unknown")); want != have {
		t.Errorf("want %v, have %v", want, have)
	}
}
