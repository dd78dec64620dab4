package handle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gradewise_renders_total",
	Help: "Finished PDF renders by kind.",
}, []string{"kind"})
