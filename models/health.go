package models

import "time"

// HealthStatus is the payload of the basic liveness probe.
type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// DatabaseHealth reports the outcome of a database connectivity probe.
type DatabaseHealth struct {
	Status   string  `json:"status"`
	Database string  `json:"database"`
	Error    *string `json:"error,omitempty"`
}

// ServiceInfo describes the running process for the detailed health report.
type ServiceInfo struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	GoVersion string    `json:"go_version"`
	Uptime    time.Time `json:"uptime"`
}

// RuntimeStats carries Go runtime figures for the detailed health report.
type RuntimeStats struct {
	NumGoroutine   int    `json:"num_goroutine"`
	NumCPU         int    `json:"num_cpu"`
	AllocBytes     uint64 `json:"alloc_bytes"`
	SysBytes       uint64 `json:"sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
	HeapObjects    uint64 `json:"heap_objects"`
	TotalAllocated uint64 `json:"total_allocated"`
}

// DetailedHealth aggregates service, database and runtime state.
type DetailedHealth struct {
	Status   string         `json:"status"`
	Service  ServiceInfo    `json:"service"`
	Database DatabaseHealth `json:"database"`
	Runtime  RuntimeStats   `json:"runtime"`
}
