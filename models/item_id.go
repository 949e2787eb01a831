package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemID identifies a catalog item. Pages hand ids over as strings while the
// API serves integers, so both JSON forms decode. Canonical integers are
// encoded as JSON numbers and everything else as a string.
type ItemID string

func (id ItemID) String() string {
	return string(id)
}

// Int returns the id as an integer when it is one
func (id ItemID) Int() (int, bool) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (id ItemID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok && strconv.Itoa(n) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item_id must be a string or a number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}
