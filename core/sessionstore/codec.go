package sessionstore

import (
	"encoding/json"
	"fmt"

	"github.com/biblio2ie/biblio/core/session"
)

func encode(snap session.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func decode(data []byte) (session.Snapshot, error) {
	var snap session.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return session.Snapshot{}, fmt.Errorf("%w: %v", session.ErrCorruptSnapshot, err)
	}
	return snap, nil
}
