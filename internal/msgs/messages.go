package msgs

const (
	MsgOperationFailed = "Operation failed"
	MsgServerRunning   = "Canvas server is running"
)
