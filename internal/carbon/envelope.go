package carbon

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	cmdStatus   = 0
	fromMonitor = 1
)

// Envelope is the outbound command frame.
type Envelope struct {
	ID   string  `json:"Id"`
	Data Request `json:"Data"`
}

// Request is the command body inside an Envelope.
type Request struct {
	Cmd         int      `json:"Cmd"`
	Data        struct{} `json:"Data"`
	RequestID   string   `json:"RequestID"`
	MainboardID string   `json:"MainboardID"`
	TimeStamp   int64    `json:"TimeStamp"`
	From        int      `json:"From"`
}

// NewPollEnvelope builds a status request stamped with now.
func NewPollEnvelope(now time.Time) Envelope {
	return Envelope{
		Data: Request{
			Cmd:       cmdStatus,
			RequestID: NewRequestID(),
			TimeStamp: now.UnixMilli(),
			From:      fromMonitor,
		},
	}
}

// NewRequestID returns a random 32 character hex identifier.
func NewRequestID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Marshal encodes the envelope for a text frame.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
