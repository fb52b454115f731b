package service

import "github.com/prometheus/client_golang/prometheus"

var userMutations = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "users_mutations_total", Help: "Successful user writes by operation"},
	[]string{"op"},
)

func init() { prometheus.MustRegister(userMutations) }
