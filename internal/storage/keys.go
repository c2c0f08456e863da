package storage

import (
	"fmt"

	"github.com/kacper-wojtaszczyk/jackfruit/watcher-go/internal/model"
)

type ObjectKey struct {
	Prefix model.KeyPrefix
	Name   string // base file name, no directories
}

func (k ObjectKey) Key() string {
	return fmt.Sprintf("%s/%s", k.Prefix, k.Name)
}

// SidecarKey is <prefix>/<prefix>_info.txt.
func SidecarKey(prefix model.KeyPrefix) ObjectKey {
	return ObjectKey{Prefix: prefix, Name: prefix.SidecarName()}
}
