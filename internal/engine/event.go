package engine

// EventKind discriminates normalized inbound actions.
type EventKind string

const (
	// EventText is a free-text message.
	EventText EventKind = "text"
	// EventButton is an inline button tap carrying a token and payload.
	EventButton EventKind = "button"
	// EventContact is a shared-contact action.
	EventContact EventKind = "contact"
	// EventCommand is a slash command such as /start.
	EventCommand EventKind = "command"
)

// Button tokens understood by the engine. The transport encodes them as the
// callback unique with the payload after the separator.
const (
	TokenLang      = "lang"
	TokenMoreInfo  = "more_info"
	TokenSubscribe = "subscribe"
	TokenBackHome  = "back_home"
	TokenPackage   = "pkg"
	TokenAgree     = "agree"
	TokenPaid      = "paid"
)

// Commands understood by the engine.
const (
	CommandStart = "start"
	CommandHelp  = "help"
)

// Contact carries a shared contact card.
type Contact struct {
	Phone string
	Name  string
}

// Event is one normalized inbound action for a conversation.
type Event struct {
	Kind    EventKind
	Text    string
	Token   string
	Payload string
	Command string
	Contact *Contact
}

// Identity is the display identity of the sender, used only for admin
// notifications and order snapshots.
type Identity struct {
	UserID   int64
	Username string
	FullName string
}
