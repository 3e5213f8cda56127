package cart

import "encoding/json"

const snapshotVersion = 1

type snapshot struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// MarshalSnapshot encodes items in the durable snapshot format.
func MarshalSnapshot(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(snapshot{Version: snapshotVersion, Items: items})
}

// UnmarshalSnapshot decodes a snapshot. Items that fail validation or repeat
// an earlier ID are dropped, so a tampered snapshot can never break the
// uniqueness invariant. The number of dropped items is returned.
func UnmarshalSnapshot(data []byte) ([]Item, int, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, 0, err
	}
	if snap.Version != snapshotVersion {
		return nil, 0, ErrUnsupportedSnapshot
	}

	items := make([]Item, 0, len(snap.Items))
	dropped := 0
	for _, it := range snap.Items {
		if err := it.Validate(); err != nil || Contains(items, it.ID) {
			dropped++
			continue
		}
		items = append(items, it)
	}
	return items, dropped, nil
}
