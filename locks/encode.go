package locks

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	sharedresources "github.com/concourse/sharedresources"
)

// EncodeRecords renders locks using C4's persisted-record encoding:
// "name<TAB>mode<TAB>value\n" per lock, per spec.md §6. An empty value
// is a lone trailing tab before the newline.
func EncodeRecords(w io.Writer, ls []sharedresources.Lock) error {
	for _, l := range ls {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.Mode, l.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

// DecodeRecords parses C4's persisted-record encoding back into locks.
// Malformed lines are skipped rather than failing the whole read, since
// a partially-corrupt record shouldn't sink every other lock a build
// holds (spec.md §7's StorageError recovery applies one level up, when
// the record can't be read at all).
func DecodeRecords(r io.Reader) ([]sharedresources.Lock, error) {
	scanner := bufio.NewScanner(r)

	var out []sharedresources.Lock
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 2 {
			continue
		}

		mode := sharedresources.LockMode(fields[1])
		if mode != sharedresources.ReadLock && mode != sharedresources.WriteLock {
			continue
		}

		l := sharedresources.Lock{Name: fields[0], Mode: mode}
		if len(fields) == 3 {
			l.Value = fields[2]
		}
		out = append(out, l)
	}

	return out, scanner.Err()
}
