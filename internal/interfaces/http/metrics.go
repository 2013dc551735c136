package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas de los endpoints de webhook: las entregas de los proveedores son
// lo único del sistema que no dispara un humano, así que son lo primero que
// se mira cuando "no se creó el usuario".
var (
	webhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatokay_webhook_events_total",
		Help: "Eventos de webhook por origen y resultado.",
	}, []string{"source", "result"})
)

// Resultados usados en la métrica.
const (
	resultProcessed    = "processed"
	resultIgnored      = "ignored"
	resultReplay       = "replay"
	resultRejected     = "rejected"
	resultUnconfigured = "unconfigured"
	resultError        = "error"
)
