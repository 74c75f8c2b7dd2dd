package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/spacemeshos/go-parachain/common/types"
)

var _ pflag.Value = (*coreList)(nil)

// coreList collects core indices from comma separated values. Repeating the flag appends.
type coreList []types.CoreIndex

func (l coreList) String() string {
	parts := make([]string, 0, len(l))
	for _, core := range l {
		parts = append(parts, core.String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Set implements pflag.Value.Set.
func (l *coreList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		core, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return fmt.Errorf("core index %q: %w", part, err)
		}
		*l = append(*l, types.CoreIndex(core))
	}
	return nil
}

// Type implements pflag.Value.Type.
func (coreList) Type() string {
	return "cores"
}
