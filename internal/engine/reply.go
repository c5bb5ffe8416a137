package engine

// Choice is one labeled option presented with a reply. A non-empty URL makes
// it an "open external link" choice; otherwise Token/Payload round-trip
// through the transport as a button event.
type Choice struct {
	Label   string
	Token   string
	Payload string
	URL     string
}

// Reply is the outbound message plus the choices to render under it.
type Reply struct {
	Text string
	Rows [][]Choice
}

// NotificationKind tags admin notifications by the event that produced them.
type NotificationKind string

const (
	// NotificationSelection is emitted when a catalog package is selected.
	NotificationSelection NotificationKind = "selection"
	// NotificationAgreement is emitted when terms are accepted.
	NotificationAgreement NotificationKind = "agreement"
	// NotificationNewOrder is emitted when payment proof is recorded.
	NotificationNewOrder NotificationKind = "new_order"
)

// Notification is a fire-and-forget message for the admin collaborator.
// Delivery failures never affect the user-facing transition.
type Notification struct {
	Kind NotificationKind
	Text string
}
