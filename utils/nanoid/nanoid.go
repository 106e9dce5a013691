// Package nanoid generates the string primary keys used by every table.
package nanoid

import (
	"strings"

	"github.com/ncobase/taskapi/consts"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// PrimaryKey returns a new primary key.
func PrimaryKey() string {
	return gonanoid.MustGenerate(consts.PrimaryKey, consts.PrimaryKeySize)
}

// IsPrimaryKey reports whether id has the shape of a generated primary key.
func IsPrimaryKey(id string) bool {
	if len(id) != consts.PrimaryKeySize {
		return false
	}
	for _, c := range id {
		if !strings.ContainsRune(consts.PrimaryKey, c) {
			return false
		}
	}
	return true
}
