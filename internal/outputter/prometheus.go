package outputter

import (
	"benchkit/internal/params"
	"benchkit/internal/result"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const metricsNamespace = "benchkit"

// Prometheus records results as gauges in a private registry and flushes
// them at End, either to a node-exporter textfile or to a Pushgateway.
type Prometheus struct {
	reg                 *prometheus.Registry
	runSeconds          *prometheus.GaugeVec
	runsPerSecond       *prometheus.GaugeVec
	iterationsPerSecond *prometheus.GaugeVec
	iterations          *prometheus.GaugeVec
	executed            prometheus.Gauge
	disabled            prometheus.Gauge
	flush               func(prometheus.Gatherer) error
	err                 error
}

// NewPrometheusTextfile writes the metrics to path in the text exposition
// format at End.
func NewPrometheusTextfile(path string) *Prometheus {
	return newPrometheus(func(g prometheus.Gatherer) error {
		return prometheus.WriteToTextfile(path, g)
	})
}

// NewPushgateway pushes the metrics to the Pushgateway at url under job at End.
func NewPushgateway(url, job string) *Prometheus {
	return newPrometheus(func(g prometheus.Gatherer) error {
		return push.New(url, job).Gatherer(g).Push()
	})
}

func newPrometheus(flush func(prometheus.Gatherer) error) *Prometheus {
	labels := []string{"fixture", "name", "parameters", "stat"}
	p := &Prometheus{
		reg: prometheus.NewRegistry(),
		runSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of one benchmark run.",
		}, labels),
		runsPerSecond: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "runs_per_second",
			Help:      "Benchmark runs per second.",
		}, labels),
		iterationsPerSecond: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "iterations_per_second",
			Help:      "Benchmark iterations per second.",
		}, labels),
		iterations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "iterations_per_run",
			Help:      "Configured iterations per run.",
		}, labels[:3]),
		executed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "benchmarks_executed",
			Help:      "Number of benchmarks executed in the last session.",
		}),
		disabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "benchmarks_disabled",
			Help:      "Number of disabled benchmarks in the last session.",
		}),
		flush: flush,
	}
	p.reg.MustRegister(p.runSeconds, p.runsPerSecond, p.iterationsPerSecond, p.iterations, p.executed, p.disabled)
	return p
}

// Gatherer exposes the underlying registry.
func (p *Prometheus) Gatherer() prometheus.Gatherer { return p.reg }

// Err returns the flush error, if any.
func (p *Prometheus) Err() error { return p.err }

func (p *Prometheus) Begin(enabledCount, disabledCount int) {
	p.disabled.Set(float64(disabledCount))
}

func (p *Prometheus) End(executedCount, disabledCount int) {
	p.executed.Set(float64(executedCount))
	p.disabled.Set(float64(disabledCount))
	if p.flush != nil {
		p.err = p.flush(p.reg)
	}
}

func (p *Prometheus) BeginTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
	p.iterations.WithLabelValues(fixtureName, testName, parameters.String()).Set(float64(iterationsCount))
}

func (p *Prometheus) SkipDisabledTest(fixtureName, testName string, parameters params.Parameters, runsCount, iterationsCount int) {
}

func (p *Prometheus) EndTest(fixtureName, testName string, parameters params.Parameters, res result.Result) {
	ps := parameters.String()
	set := func(v *prometheus.GaugeVec, avg, lo, hi float64) {
		v.WithLabelValues(fixtureName, testName, ps, "avg").Set(avg)
		v.WithLabelValues(fixtureName, testName, ps, "min").Set(lo)
		v.WithLabelValues(fixtureName, testName, ps, "max").Set(hi)
	}
	set(p.runSeconds, res.RunTimeAverage()/1e9, res.RunTimeMinimum()/1e9, res.RunTimeMaximum()/1e9)
	set(p.runsPerSecond, res.RunsPerSecondAverage(), res.RunsPerSecondMinimum(), res.RunsPerSecondMaximum())
	set(p.iterationsPerSecond, res.IterationsPerSecondAverage(), res.IterationsPerSecondMinimum(), res.IterationsPerSecondMaximum())
}
