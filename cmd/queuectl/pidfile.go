package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// appendPID appends the current process id as one line to path,
// creating the file if necessary. It is a plain-text registry of
// active worker processes; nothing in the kernel reads it.
func appendPID(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open pid file: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d\n", os.Getpid())
	return err
}

// removePID removes this process's id from the pid file, leaving
// other workers' lines untouched.
func removePID(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	self := strconv.Itoa(os.Getpid())
	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" || line == self {
			continue
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, "\n")
	if len(kept) > 0 {
		out += "\n"
	}
	return os.WriteFile(path, []byte(out), 0o644)
}
