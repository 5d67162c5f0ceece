package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/filex"
	"github.com/dmitrijs2005/constructhub/internal/netx"
)

var errUsage = errors.New("usage")

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	readFile      = filex.ReadAttachment
)

func parseID(s string, usage string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// askAttachment prompts for an optional file path. An empty answer means no
// file.
func (a *App) askAttachment(prompt, field string) (*netx.File, error) {
	path, err := getSimpleText(a.reader, prompt+" (empty to skip)", a.out)
	if err != nil || path == "" {
		return nil, err
	}
	f, err := readFile(field, path)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
