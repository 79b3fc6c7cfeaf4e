package session

// OpState is the lifecycle of a single named operation:
// idle → pending → succeeded | failed. No operation is retried
// automatically; a new call restarts the machine from pending.
type OpState int

const (
	StateIdle OpState = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s OpState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Operation names the session manager's asynchronous transitions.
type Operation string

const (
	OpRegister      Operation = "register"
	OpLogin         Operation = "login"
	OpFetchProfile  Operation = "fetchProfile"
	OpUpdateProfile Operation = "updateProfile"
)
