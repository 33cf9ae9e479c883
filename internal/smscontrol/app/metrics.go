package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	admissionDecisionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smscontrol",
			Name:      "admission_decisions_total",
			Help:      "Admission gate decisions.",
		},
		[]string{"gate", "outcome"}, // outcome: "allow", "deny"
	)

	sendsDispatchedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smscontrol",
			Name:      "sends_dispatched_total",
			Help:      "Send requests forwarded to the radio dispatch layer.",
		},
		[]string{"kind"}, // "text", "visual_voicemail"
	)

	fdnEvaluationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smscontrol",
			Name:      "fdn_evaluations_total",
			Help:      "FDN allow-list evaluations.",
		},
		[]string{"result"}, // "blocked", "allowed"
	)

	wapSizeLookupCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smscontrol",
			Name:      "wap_size_lookups_total",
			Help:      "WAP push size cache lookups.",
		},
		[]string{"result"}, // "hit", "miss"
	)

	journalFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "smscontrol",
			Name:      "decision_journal_failures_total",
			Help:      "Decision journal writes that failed.",
		},
	)
)
