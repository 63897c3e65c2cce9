package signal

// Bus is the cross-instance change signal. Publishing is fire-and-forget
// from the caller's perspective; consumers only refresh display state.
type Bus interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
