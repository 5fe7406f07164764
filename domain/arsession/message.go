package arsession

import "github.com/soocke/wallpreview-go/domain/capture"

// Message is a user-visible notice raised by a capture failure.
type Message struct {
	Kind    capture.Kind
	Text    string
	Attempt uint64
}

// Texts shown for each capture failure kind.
const (
	TextUnsupported      = "This device does not support camera access."
	TextPermissionDenied = "Camera permission was denied. Check camera permissions and try again."
	TextTimeout          = "The camera did not start in time. Press Start to retry."
	textDevicePrefix     = "Camera failed: "
)

func messageFor(ce *capture.CaptureError, attempt uint64) Message {
	m := Message{Kind: ce.Kind, Attempt: attempt}
	switch ce.Kind {
	case capture.Unsupported:
		m.Text = TextUnsupported
	case capture.PermissionDenied:
		m.Text = TextPermissionDenied
	case capture.Timeout:
		m.Text = TextTimeout
	default:
		cause := "unknown error"
		if ce.Err != nil {
			cause = ce.Err.Error()
		}
		m.Text = textDevicePrefix + cause
	}
	return m
}
