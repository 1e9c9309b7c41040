package chatprobe

const (
	// DefaultEndpoint is the chat endpoint every probe posts to.
	DefaultEndpoint = "http://localhost:8000/chat"
	// DefaultUserID is used when no user id is given on the command line.
	DefaultUserID = "e2e_test_01"
	// PayloadFilePattern is the os.CreateTemp pattern for payload files.
	PayloadFilePattern = "chatprobe-payload-*.json"
	// ResponsePreviewLimit is the number of characters of the reply printed by Send.
	ResponsePreviewLimit = 300
	// AgentUnknown is printed when the reply has no agent field.
	AgentUnknown = "UNKNOWN"
	// AgentParseError is printed when the reply could not be obtained or parsed.
	AgentParseError = "PARSE_ERROR"
	// RequestIDHeader carries the per-request id to the chat service.
	RequestIDHeader = "X-Request-ID"
)
