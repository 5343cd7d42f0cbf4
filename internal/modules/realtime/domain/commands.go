package domain

// SnapshotCommand is the payload of the "snapshot" websocket command. An empty date re-sends
// the snapshot for the date the client connected with.
type SnapshotCommand struct {
	Date string `json:"date"`
}
