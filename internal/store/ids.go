package store

import (
	"fmt"
	"regexp"
	"strconv"
)

var clientIDPattern = regexp.MustCompile(`CL-(\d+)`)

// GenerateClientID returns the next human-readable client code, formatted
// CL-### (zero-padded to three digits, growing naturally beyond that).
//
// The numeric suffix is max-plus-one over the union of active clients and
// deleted-client tombstones, so a code is never reused after deletion.
// Malformed codes contribute 0 rather than failing generation; two
// malformed records can therefore collide on CL-001 when no well-formed
// code exists yet. Known risk, accepted for legacy data.
func (s *Store) GenerateClientID() string {
	maxNum := 0
	consider := func(clientID string) {
		m := clientIDPattern.FindStringSubmatch(clientID)
		if m == nil {
			return
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		if n > maxNum {
			maxNum = n
		}
	}

	for _, c := range s.Clients() {
		consider(c.ClientID)
	}
	for _, d := range s.DeletedClients() {
		consider(d.ClientID)
	}

	return fmt.Sprintf("CL-%03d", maxNum+1)
}
