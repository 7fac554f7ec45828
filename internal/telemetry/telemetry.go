package telemetry

import (
	"fmt"

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// Event is emitted once per installed asset.
type Event struct {
	AssetID   string
	AssetName string
	Kind      string // asset.KindPublic or asset.KindPrivate
	Pack      *asset.PackInfo
}

// Fields returns the event as structured log fields.
func (e Event) Fields() logrus.Fields {
	f := logrus.Fields{
		"asset":  e.AssetID,
		"name":   e.AssetName,
		"kind":   e.Kind,
		"pack":   "",
		"packId": "",
		"tag":    "",
	}
	if e.Pack != nil {
		f["pack"] = e.Pack.Name
		f["packId"] = e.Pack.ID
		f["tag"] = e.Pack.Tag
	}
	return f
}

// Recorder logs events and counts them per kind and pack.
type Recorder struct {
	log      logrus.FieldLogger
	registry *prometheus.Registry
	installs *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own metrics registry. A nil
// logger discards output.
func NewRecorder(log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logger.Discard()
	}
	reg := prometheus.NewRegistry()
	return &Recorder{
		log:      log,
		registry: reg,
		installs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetctl",
			Name:      "asset_installs_total",
			Help:      "Number of assets installed, by kind and pack.",
		}, []string{"kind", "pack"}),
	}
}

// Report records one installed asset.
func (r *Recorder) Report(e Event) {
	pack := ""
	if e.Pack != nil {
		pack = e.Pack.Name
	}
	r.installs.WithLabelValues(e.Kind, pack).Inc()
	r.log.WithFields(e.Fields()).Info("asset installed")
}

// Installs returns the counter for a kind and pack name.
func (r *Recorder) Installs(kind, pack string) prometheus.Counter {
	return r.installs.WithLabelValues(kind, pack)
}

// Gatherer exposes the recorder's metrics.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the current counters to path in the Prometheus text
// format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
