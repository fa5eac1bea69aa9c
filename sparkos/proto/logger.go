package proto

// MaxLogLineBytes bounds a MsgLogLine payload to one kernel message.
const MaxLogLineBytes = 128

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Lines longer than MaxLogLineBytes are truncated.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(s string) []byte {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if len(s) > MaxLogLineBytes {
		s = s[:MaxLogLineBytes]
	}
	return []byte(s)
}
