package main

import (
	"fmt"
	"os"

	"github.com/proftrace/proftrace/facade"
	"github.com/proftrace/proftrace/session"
)

// loadFile reads path and loads it into a fresh façade, returning the
// façade and the handle of the newly loaded profile.
func loadFile(path string) (*facade.Facade, session.Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	f := facade.New()
	h, err := f.LoadProfile(path, data)
	if err != nil {
		return nil, 0, facade.Classify(err)
	}
	return f, h, nil
}
