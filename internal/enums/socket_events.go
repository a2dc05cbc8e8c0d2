package enums

// Inbound events (client -> server).
const (
	SOCKET_EVENT_JOIN_SESSION         = "join-session"
	SOCKET_EVENT_LEAVE_SESSION        = "leave-session"
	SOCKET_EVENT_UPDATE_POSITION      = "update-position"
	SOCKET_EVENT_UPDATE_COLOR         = "update-color"
	SOCKET_EVENT_UPDATE_NAME          = "update-name"
	SOCKET_EVENT_SUBMIT_CHAT          = "submit-chat"
	SOCKET_EVENT_BEGIN_STROKE_SEGMENT = "begin-stroke-segment"
	SOCKET_EVENT_COMPLETE_STROKE      = "complete-stroke"
)

// Outbound events (server -> client).
const (
	SOCKET_EVENT_ROSTER_SNAPSHOT   = "roster-snapshot"
	SOCKET_EVENT_SELF_RECORD       = "self-record"
	SOCKET_EVENT_PALETTE           = "palette"
	SOCKET_EVENT_CHAT_LOG_SNAPSHOT = "chat-log-snapshot"
	SOCKET_EVENT_HISTORY_SNAPSHOT  = "history-snapshot"
	SOCKET_EVENT_USER_JOINED       = "user-joined"
	SOCKET_EVENT_USER_LEFT         = "user-left"
	SOCKET_EVENT_POSITION_CHANGED  = "position-changed"
	SOCKET_EVENT_COLOR_CHANGED     = "color-changed"
	SOCKET_EVENT_NAME_CHANGED      = "name-changed"
	SOCKET_EVENT_CHAT_POSTED       = "chat-posted"
	SOCKET_EVENT_STROKE_SEGMENT    = "stroke-segment"
	SOCKET_EVENT_HISTORY_TRUNCATED = "history-truncated"
)
