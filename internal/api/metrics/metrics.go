// Package metrics defines and registers all custom Prometheus metrics for
// the guest portal API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "guestportal"

// GuestsProvisionedTotal counts successfully provisioned guest accounts.
// Label:
//   - department: the owning department id
var GuestsProvisionedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guests_provisioned_total",
		Help:      "Total number of guest accounts provisioned, by department.",
	},
	[]string{"department"},
)

// GuestMutationsTotal counts committed guest mutations.
// Label:
//   - op: "update" or "delete"
var GuestMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guest_mutations_total",
		Help:      "Total number of committed guest mutations, by operation.",
	},
	[]string{"op"},
)

// CredentialDeliveriesTotal counts credential mail attempts.
// Label:
//   - result: "sent" or "failed"
var CredentialDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_deliveries_total",
		Help:      "Total number of credential delivery attempts, by result.",
	},
	[]string{"result"},
)

// ProvisioningErrorsTotal counts refused or failed provisioning requests.
// Label:
//   - reason: "conflict", "forbidden", "validation", or "internal"
var ProvisioningErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provisioning_errors_total",
		Help:      "Total number of guest provisioning requests that failed, by reason.",
	},
	[]string{"reason"},
)
