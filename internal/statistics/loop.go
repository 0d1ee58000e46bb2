package statistics

import (
	"github.com/controlkit/pidloop/internal/loops"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemLoop = "loop"

type LoopCollector struct {
	loops []*loops.Loop

	setpoint   *prometheus.Desc
	measure    *prometheus.Desc
	errorValue *prometheus.Desc
	proportion *prometheus.Desc
	integral   *prometheus.Desc
	derivative *prometheus.Desc
	output     *prometheus.Desc
	ticks      *prometheus.Desc
}

func NewLoopCollector(loops []*loops.Loop) *LoopCollector {
	return &LoopCollector{
		loops: loops,
		setpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "setpoint"),
			"Target value of the loop",
			[]string{"id"}, nil,
		),
		measure: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "measure"),
			"Last measurement seen by the controller",
			[]string{"id"}, nil,
		),
		errorValue: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "error"),
			"Current error (setpoint - measure)",
			[]string{"id"}, nil,
		),
		proportion: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "proportion"),
			"Clamped proportional term",
			[]string{"id"}, nil,
		),
		integral: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "integral"),
			"Clamped integral term",
			[]string{"id"}, nil,
		),
		derivative: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "derivative"),
			"Clamped derivative term",
			[]string{"id"}, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "output"),
			"Control output after output filters",
			[]string{"id"}, nil,
		),
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "ticks_total"),
			"Number of update cycles applied to this loop",
			[]string{"id"}, nil,
		),
	}
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.setpoint
	ch <- collector.measure
	ch <- collector.errorValue
	ch <- collector.proportion
	ch <- collector.integral
	ch <- collector.derivative
	ch <- collector.output
	ch <- collector.ticks
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	for _, loop := range collector.loops {
		snapshot := loop.Snapshot()
		loopId := loop.GetId()
		ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, snapshot.Setpoint, loopId)
		ch <- prometheus.MustNewConstMetric(collector.measure, prometheus.GaugeValue, snapshot.Measure, loopId)
		ch <- prometheus.MustNewConstMetric(collector.errorValue, prometheus.GaugeValue, snapshot.Error, loopId)
		ch <- prometheus.MustNewConstMetric(collector.proportion, prometheus.GaugeValue, snapshot.Proportion, loopId)
		ch <- prometheus.MustNewConstMetric(collector.integral, prometheus.GaugeValue, snapshot.Integral, loopId)
		ch <- prometheus.MustNewConstMetric(collector.derivative, prometheus.GaugeValue, snapshot.Derivative, loopId)
		ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, snapshot.Output, loopId)
		ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(snapshot.Ticks), loopId)
	}
}
