package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// flagDie terminates the program when a command line flag is invalid.
func flagDie(description string, args ...interface{}) {
	msg := fmt.Sprintf(description, args...)
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(2)
}

// flTime returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
func flTime(fl *flag.FlagSet, name string, defaultVal time.Time, usage string) *flagtime {
	var ft flagtime
	if !defaultVal.IsZero() {
		ft.time = defaultVal.UTC()
	}
	fl.Var(&ft, name, usage)
	return &ft
}

type flagtime struct {
	time time.Time
}

func (t flagtime) Time() time.Time {
	return t.time
}

func (t *flagtime) String() string {
	if t.time.IsZero() {
		return ""
	}
	return t.time.Format(time.RFC3339)
}

func (t *flagtime) Set(raw string) error {
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("cannot parse time: %s", err)
	}
	t.time = v.UTC()
	return nil
}
