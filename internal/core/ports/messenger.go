package ports

// Messenger delivers operator-visible messages, typically misconfiguration
// reports a human has to act on. Fire-and-forget.
//
//go:generate go run go.uber.org/mock/mockgen -source=messenger.go -destination=mocks/mock_messenger.go -package=mocks
type Messenger interface {
	Say(text string)
}
