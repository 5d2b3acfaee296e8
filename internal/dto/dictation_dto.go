package dto

// DictationFrame is an inbound websocket text frame. Binary frames carry
// raw PCM audio and bypass JSON decoding entirely.
type DictationFrame struct {
	Content string `json:"content"`
	Tone    string `json:"tone,omitempty"`
}

// DictationPush is the outbound websocket envelope. Type is either
// "content" (Data carries the full replacement document) or "error"
// (Data carries the fixed notice).
type DictationPush struct {
	Type string `json:"type"`
	Data string `json:"data"`
	Seq  int64  `json:"seq,omitempty"`
}

// DocumentSnapshot is the payload published after every accepted
// utterance, consumed by the persistence pipeline and the hub fanout.
type DocumentSnapshot struct {
	SessionId string `json:"session_id"`
	Document  string `json:"document"`
	Seq       int64  `json:"seq"`
}
