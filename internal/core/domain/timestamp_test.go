package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_AcceptsServiceFormats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2024-01-01T00:00:00"`, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{`"2024-01-01T00:00:00.123456"`, time.Date(2024, 1, 1, 0, 0, 0, 123456000, time.UTC)},
		{`"2024-01-01T12:00:00Z"`, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{`"2024-01-01T12:00:00+02:00"`, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tc.in), &ts); err != nil {
			t.Fatalf("%s: unmarshal error: %v", tc.in, err)
		}
		if !ts.Time.Equal(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.in, ts.Time, tc.want)
		}
	}
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected error for unparsable timestamp")
	}
}

func TestUser_IsAdmin(t *testing.T) {
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Fatal("user role must not be admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Fatal("admin role must be admin")
	}
	var nobody *User
	if nobody.IsAdmin() {
		t.Fatal("nil profile must not be admin")
	}
}
