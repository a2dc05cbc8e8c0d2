package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidPayload   = Error("invalid payload")
	ErrUnknownEvent     = Error("unknown event")
	ErrInvalidColor     = Error("color is not part of the palette")
	ErrInvalidName      = Error("name is empty or too long")
	ErrInvalidChatText  = Error("chat text is empty or too long")
	ErrInvalidImage     = Error("stroke image is empty")
	ErrDispatcherClosed = Error("dispatcher is shut down")
)
