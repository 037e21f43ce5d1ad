// Package service is the boundary to the remote translation service.
package service

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// keySpace namespaces snapshot keys.
var keySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("relens:snapshot"))

// Snapshot is the input captured at request time. It is a value; later edits
// never change a captured snapshot.
type Snapshot struct {
	Pattern     string `json:"pattern"`
	Constraints string `json:"constraints"`
	Text        string `json:"text"`
}

// Key returns a stable identifier for the snapshot contents.
// Fields are length-prefixed so ("ab","c") and ("a","bc") differ.
func (s Snapshot) Key() string {
	var b strings.Builder
	for _, field := range []string{s.Pattern, s.Constraints, s.Text} {
		b.WriteString(strconv.Itoa(len(field)))
		b.WriteByte(':')
		b.WriteString(field)
	}
	return uuid.NewSHA1(keySpace, []byte(b.String())).String()
}

// IsEmpty reports whether all three fields are empty.
func (s Snapshot) IsEmpty() bool {
	return s.Pattern == "" && s.Constraints == "" && s.Text == ""
}
