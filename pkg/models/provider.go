package models

import "strconv"

// Executor is a worker host that runs flow executions.
type Executor struct {
	ID     int    `json:"id"`
	Host   string `json:"host"             validate:"required"`
	Port   int    `json:"port,omitempty"   validate:"omitempty,min=1,max=65535"`
	Active bool   `json:"active,omitempty"`
}

// Address returns host:port, or just the host when no port is known.
func (e *Executor) Address() string {
	if e == nil {
		return ""
	}

	if e.Port == 0 {
		return e.Host
	}

	return e.Host + ":" + strconv.Itoa(e.Port)
}
