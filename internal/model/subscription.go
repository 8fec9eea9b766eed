package model

// PushSubscription holds a browser push subscription and the machines it
// wants availability alerts for.
type PushSubscription struct {
	Endpoint   string   `json:"endpoint"`
	P256DH     string   `json:"p256dh"`
	Auth       string   `json:"auth"`
	MachineIDs []string `json:"machineIds"`
}
