package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts lists the accepted wire formats. The service serialises
// naive datetimes without a zone suffix, which time.Time's own unmarshaller
// rejects, so both variants must be tried.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Timestamp is a time.Time that tolerates zone-less datetime strings.
// Zone-less values are interpreted as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("domain: invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}
